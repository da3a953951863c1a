// Package lifecycle 实现扫描向导的工单生命周期状态机。
//
// 六步流程 扫描 → 优先级 → 部门 → 追加信息 → 媒体 → 最终确认 建模为
// 标签联合：每个状态一个结构体，只携带该时点已知的字段，使非法状态
// （例如未经过部门决定就进入媒体步骤）无法表达。所有导航都是纯内存
// 转移，直到最终确认才发生持久化。
package lifecycle

import (
	"errors"
	"strings"
	"time"
)

// ── 向导业务错误 ──

var (
	ErrLeereAuftragsnummer = errors.New("auftragsnummer must not be empty")
	ErrUngueltigePrio      = errors.New("prioritaet must be 1 or 2")
	ErrFalscherSchritt     = errors.New("operation not valid in current wizard step")
)

// Step 向导步骤标识
type Step string

const (
	StepPrioritaet    Step = "prioritaet"
	StepAbteilung     Step = "abteilung"
	StepZusatzinfo    Step = "zusatzinfo"
	StepMedien        Step = "medien"
	StepBestaetigung  Step = "bestaetigung"
	StepAbgeschlossen Step = "abgeschlossen"
)

// State 向导状态（标签联合的公共接口）
type State interface {
	Step() Step
}

// PrioritySelection 扫描完成，等待优先级选择
type PrioritySelection struct {
	Auftragsnummer string
}

func (*PrioritySelection) Step() Step { return StepPrioritaet }

// DepartmentSelection 优先级已选，等待部门决定（选择或显式跳过）
type DepartmentSelection struct {
	Auftragsnummer string
	Prioritaet     int
}

func (*DepartmentSelection) Step() Step { return StepAbteilung }

// ZusatzinfoSelection 部门已决定，等待追加信息决定
type ZusatzinfoSelection struct {
	Auftragsnummer string
	Prioritaet     int
	Abteilung      string // 空 = 已显式跳过
}

func (*ZusatzinfoSelection) Step() Step { return StepZusatzinfo }

// MediaSelection 追加信息已决定，等待媒体步骤的唯一结果
type MediaSelection struct {
	Auftragsnummer string
	Prioritaet     int
	Abteilung      string
	Zusatzinfo     string
}

func (*MediaSelection) Step() Step { return StepMedien }

// FinalConfirmation 全部字段齐备，等待最终优先级确认（落库时点）。
// Prioritaet 携带步骤 2 的预选值，确认时可覆盖。
type FinalConfirmation struct {
	Auftragsnummer string
	Prioritaet     int
	Abteilung      string
	Zusatzinfo     string
	MediaInfo      string // 媒体步骤产出的展示字符串，进入 zusatzDaten
}

func (*FinalConfirmation) Step() Step { return StepBestaetigung }

// Done 工单已创建，会话结束
type Done struct {
	Auftragsnummer string
	OrderID        uint
}

func (*Done) Step() Step { return StepAbgeschlossen }

// ── 状态转移 ──

// Start 以扫入的业务键开启向导（步骤 1 → 2）
func Start(auftragsnummer string) (*PrioritySelection, error) {
	auftragsnummer = strings.TrimSpace(auftragsnummer)
	if auftragsnummer == "" {
		return nil, ErrLeereAuftragsnummer
	}
	return &PrioritySelection{Auftragsnummer: auftragsnummer}, nil
}

// SelectPriority 步骤 2 → 3
func (s *PrioritySelection) SelectPriority(prio int) (*DepartmentSelection, error) {
	if prio != 1 && prio != 2 {
		return nil, ErrUngueltigePrio
	}
	return &DepartmentSelection{
		Auftragsnummer: s.Auftragsnummer,
		Prioritaet:     prio,
	}, nil
}

// SelectDepartment 步骤 3 → 4；空字符串表示显式跳过
func (s *DepartmentSelection) SelectDepartment(abteilung string) *ZusatzinfoSelection {
	return &ZusatzinfoSelection{
		Auftragsnummer: s.Auftragsnummer,
		Prioritaet:     s.Prioritaet,
		Abteilung:      strings.TrimSpace(abteilung),
	}
}

// SelectZusatzinfo 步骤 4 → 5；空字符串表示显式跳过
func (s *ZusatzinfoSelection) SelectZusatzinfo(zusatzinfo string) *MediaSelection {
	return &MediaSelection{
		Auftragsnummer: s.Auftragsnummer,
		Prioritaet:     s.Prioritaet,
		Abteilung:      s.Abteilung,
		Zusatzinfo:     strings.TrimSpace(zusatzinfo),
	}
}

// Resolve 步骤 5 → 6：媒体步骤的唯一结果（mediaInfo 可为空 = 跳过）
func (s *MediaSelection) Resolve(mediaInfo string) *FinalConfirmation {
	return &FinalConfirmation{
		Auftragsnummer: s.Auftragsnummer,
		Prioritaet:     s.Prioritaet,
		Abteilung:      s.Abteilung,
		Zusatzinfo:     s.Zusatzinfo,
		MediaInfo:      mediaInfo,
	}
}

// Confirm 步骤 6：确定最终优先级。prio 为 0 时沿用预选值；
// 返回的值即将被持久化（测试性质：落库的永远是这里的返回值）。
func (s *FinalConfirmation) Confirm(prio int) (int, error) {
	if prio == 0 {
		prio = s.Prioritaet
	}
	if prio != 1 && prio != 2 {
		return 0, ErrUngueltigePrio
	}
	return prio, nil
}

// Finish 步骤 6 → 终态
func (s *FinalConfirmation) Finish(orderID uint) *Done {
	return &Done{Auftragsnummer: s.Auftragsnummer, OrderID: orderID}
}

// VideoInfo 视频附件的展示字符串（进入 zusatzDaten.mediaInfo）
func VideoInfo(now time.Time) string {
	return "Video-Aufnahme erstellt (" + now.Format("02.01.2006 15:04:05") + ")"
}
