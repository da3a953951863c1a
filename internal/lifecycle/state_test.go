package lifecycle

import (
	"errors"
	"testing"
	"time"
)

// 完整走一遍六步流程：最终落库的优先级必须是最后一步确认的值
func TestWizardFullTraversal(t *testing.T) {
	s1, err := Start("  AB-4711  ")
	if err != nil {
		t.Fatalf("Start 失败: %v", err)
	}
	if s1.Auftragsnummer != "AB-4711" {
		t.Errorf("业务键未去除空白: %q", s1.Auftragsnummer)
	}

	s2, err := s1.SelectPriority(1)
	if err != nil {
		t.Fatalf("SelectPriority 失败: %v", err)
	}

	s3 := s2.SelectDepartment("Qualitätssicherung")
	s4 := s3.SelectZusatzinfo("Nacharbeit")
	s5 := s4.Resolve("Textnotiz")

	if s5.Step() != StepBestaetigung {
		t.Fatalf("期望到达最终确认步骤, 实际 %s", s5.Step())
	}
	if s5.Prioritaet != 1 {
		t.Errorf("预选优先级应为 1, 实际 %d", s5.Prioritaet)
	}

	// 最后一步覆盖为 2：落库的必须是 2
	final, err := s5.Confirm(2)
	if err != nil {
		t.Fatalf("Confirm 失败: %v", err)
	}
	if final != 2 {
		t.Errorf("最终确认应覆盖为 2, 实际 %d", final)
	}

	done := s5.Finish(42)
	if done.OrderID != 42 || done.Step() != StepAbgeschlossen {
		t.Errorf("终态不正确: %+v", done)
	}
}

// prio 为 0 时沿用步骤 2 的预选值
func TestConfirmKeepsPreselect(t *testing.T) {
	s, err := Start("X-1")
	if err != nil {
		t.Fatal(err)
	}
	s2, _ := s.SelectPriority(2)
	s5 := s2.SelectDepartment("").SelectZusatzinfo("").Resolve("")

	final, err := s5.Confirm(0)
	if err != nil {
		t.Fatalf("Confirm 失败: %v", err)
	}
	if final != 2 {
		t.Errorf("应沿用预选优先级 2, 实际 %d", final)
	}
}

func TestStartRejectsEmptyNummer(t *testing.T) {
	for _, input := range []string{"", "   ", "\t"} {
		if _, err := Start(input); !errors.Is(err, ErrLeereAuftragsnummer) {
			t.Errorf("Start(%q) 应报空业务键错误, 实际 %v", input, err)
		}
	}
}

func TestSelectPriorityRejectsInvalid(t *testing.T) {
	s, _ := Start("X-1")
	for _, prio := range []int{0, 3, -1} {
		if _, err := s.SelectPriority(prio); !errors.Is(err, ErrUngueltigePrio) {
			t.Errorf("SelectPriority(%d) 应报非法优先级, 实际 %v", prio, err)
		}
	}
}

func TestConfirmRejectsInvalidOverride(t *testing.T) {
	s, _ := Start("X-1")
	s2, _ := s.SelectPriority(1)
	s5 := s2.SelectDepartment("").SelectZusatzinfo("").Resolve("")

	if _, err := s5.Confirm(3); !errors.Is(err, ErrUngueltigePrio) {
		t.Errorf("Confirm(3) 应报非法优先级, 实际 %v", err)
	}
}

// 跳过部门与追加信息：字段保持为空但流程照常走通
func TestSkipDepartmentAndZusatzinfo(t *testing.T) {
	s, _ := Start("X-2")
	s2, _ := s.SelectPriority(1)
	s5 := s2.SelectDepartment("  ").SelectZusatzinfo("").Resolve("")

	if s5.Abteilung != "" || s5.Zusatzinfo != "" {
		t.Errorf("跳过后字段应为空: abteilung=%q zusatzinfo=%q", s5.Abteilung, s5.Zusatzinfo)
	}
	if _, err := s5.Confirm(0); err != nil {
		t.Errorf("跳过后仍应可确认: %v", err)
	}
}

func TestVideoInfoFormat(t *testing.T) {
	now := time.Date(2026, 3, 5, 14, 30, 9, 0, time.UTC)
	got := VideoInfo(now)
	want := "Video-Aufnahme erstellt (05.03.2026 14:30:09)"
	if got != want {
		t.Errorf("VideoInfo = %q, 期望 %q", got, want)
	}
}
