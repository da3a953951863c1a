package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStoreStartAndGet(t *testing.T) {
	st := NewStore(time.Minute, &fakeBackend{})

	sess, err := st.Start("AB-1")
	if err != nil {
		t.Fatalf("Start 失败: %v", err)
	}
	if sess.ID == "" {
		t.Error("会话 ID 不应为空")
	}
	if sess.State.Step() != StepPrioritaet {
		t.Errorf("新会话应处于优先级步骤, 实际 %s", sess.State.Step())
	}

	got, err := st.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	if got.ID != sess.ID {
		t.Errorf("读取到错误会话: %s", got.ID)
	}
}

func TestStoreStartRejectsEmptyNummer(t *testing.T) {
	st := NewStore(time.Minute, &fakeBackend{})
	if _, err := st.Start("  "); !errors.Is(err, ErrLeereAuftragsnummer) {
		t.Errorf("应报空业务键错误, 实际 %v", err)
	}
}

func TestStoreUpdateTransition(t *testing.T) {
	st := NewStore(time.Minute, &fakeBackend{})
	sess, _ := st.Start("AB-2")

	err := st.Update(sess.ID, func(s *Session) error {
		cur, ok := s.State.(*PrioritySelection)
		if !ok {
			return ErrFalscherSchritt
		}
		next, err := cur.SelectPriority(1)
		if err != nil {
			return err
		}
		s.State = next
		return nil
	})
	if err != nil {
		t.Fatalf("Update 失败: %v", err)
	}

	got, _ := st.Get(sess.ID)
	if got.State.Step() != StepAbteilung {
		t.Errorf("转移后应处于部门步骤, 实际 %s", got.State.Step())
	}
}

// 一个会话里的慢转移（比如确认时的落库）不得阻塞其他会话
func TestStoreSlowUpdateBlocksOnlyItsSession(t *testing.T) {
	st := NewStore(time.Minute, &fakeBackend{})
	slow, _ := st.Start("AB-6")
	other, _ := st.Start("AB-7")

	entered := make(chan struct{})
	release := make(chan struct{})
	slowDone := make(chan error, 1)
	go func() {
		slowDone <- st.Update(slow.ID, func(*Session) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	otherDone := make(chan error, 1)
	go func() {
		otherDone <- st.Update(other.ID, func(s *Session) error {
			cur, ok := s.State.(*PrioritySelection)
			if !ok {
				return ErrFalscherSchritt
			}
			next, err := cur.SelectPriority(2)
			if err != nil {
				return err
			}
			s.State = next
			return nil
		})
	}()

	select {
	case err := <-otherDone:
		if err != nil {
			t.Fatalf("另一会话的 Update 失败: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("另一会话的 Update 被慢转移阻塞")
	}

	if _, err := st.Get(other.ID); err != nil {
		t.Errorf("慢转移期间 Get 不应被阻塞: %v", err)
	}

	close(release)
	if err := <-slowDone; err != nil {
		t.Fatalf("慢转移本身应成功: %v", err)
	}
}

func TestStoreExpiry(t *testing.T) {
	st := NewStore(10*time.Millisecond, &fakeBackend{})
	sess, _ := st.Start("AB-3")

	st.mu.Lock()
	st.sessions[sess.ID].UpdatedAt = time.Now().Add(-time.Hour)
	st.mu.Unlock()

	if _, err := st.Get(sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("过期会话应视同不存在, 实际 %v", err)
	}
}

// 放弃会话时必须释放持有的采集设备句柄
func TestStoreAbandonReleasesDevice(t *testing.T) {
	backend := &fakeBackend{}
	st := NewStore(time.Minute, backend)
	ctx := context.Background()

	sess, _ := st.Start("AB-4")
	if err := sess.Device.StartPreview(ctx); err != nil {
		t.Fatal(err)
	}

	st.Abandon(ctx, sess.ID)

	if _, err := st.Get(sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("放弃后会话应不存在, 实际 %v", err)
	}
	if backend.handles[0].stopCount() != 1 {
		t.Errorf("放弃会话应释放设备句柄, 实际停止 %d 次", backend.handles[0].stopCount())
	}
}

// 清扫过期会话时同样释放设备
func TestStoreSweepReleasesDevice(t *testing.T) {
	backend := &fakeBackend{}
	st := NewStore(time.Minute, backend)
	ctx := context.Background()

	sess, _ := st.Start("AB-5")
	if err := sess.Device.StartPreview(ctx); err != nil {
		t.Fatal(err)
	}

	st.mu.Lock()
	st.sessions[sess.ID].UpdatedAt = time.Now().Add(-time.Hour)
	st.mu.Unlock()

	st.sweep(ctx, time.Now())

	if _, err := st.Get(sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("清扫后会话应不存在, 实际 %v", err)
	}
	if backend.handles[0].stopCount() != 1 {
		t.Errorf("清扫应释放设备句柄, 实际停止 %d 次", backend.handles[0].stopCount())
	}
}
