package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KalitoMero/silent-excel-vault/internal/dto"
	"github.com/KalitoMero/silent-excel-vault/internal/lifecycle"
	"github.com/KalitoMero/silent-excel-vault/internal/model"
	"github.com/KalitoMero/silent-excel-vault/internal/repository"
)

// ── 扫描向导业务错误 ──

var (
	// ErrZusatzinfoNotFound 所选追加信息不在当前部门的候选列表中
	ErrZusatzinfoNotFound = errors.New("zusatzinfo not found for selected department")
	ErrUnknownMediaAction = errors.New("unknown media action")
)

// WizardService 扫描向导业务门面。
// 向导的全部中间状态都留在进程内会话里，只有最终确认才创建工单；
// 会话被放弃或过期时不留任何持久化痕迹。
type WizardService struct {
	store    *lifecycle.Store
	orders   OrderService
	media    MediaService
	deptRepo repository.DepartmentRepository
	infoRepo repository.AdditionalInfoRepository
	log      *zap.Logger
	now      func() time.Time
}

// NewWizardService 创建 WizardService 实例
func NewWizardService(
	store *lifecycle.Store,
	orders OrderService,
	media MediaService,
	deptRepo repository.DepartmentRepository,
	infoRepo repository.AdditionalInfoRepository,
	log *zap.Logger,
) *WizardService {
	return &WizardService{
		store:    store,
		orders:   orders,
		media:    media,
		deptRepo: deptRepo,
		infoRepo: infoRepo,
		log:      log,
		now:      time.Now,
	}
}

// Start 以扫入的业务键开启会话（步骤 1 → 2）
func (s *WizardService) Start(auftragsnummer string) (*dto.WizardSessionResponse, error) {
	sess, err := s.store.Start(auftragsnummer)
	if err != nil {
		return nil, err
	}
	s.log.Info("向导会话已开启",
		zap.String("session_id", sess.ID),
		zap.String("auftragsnummer", auftragsnummer))
	return toSessionResponse(sess), nil
}

// Get 读取会话当前状态
func (s *WizardService) Get(id string) (*dto.WizardSessionResponse, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(sess), nil
}

// transition 在会话锁内执行一次状态转移，成功时返回转移后的会话快照
func (s *WizardService) transition(id string, fn func(*lifecycle.Session) error) (*dto.WizardSessionResponse, error) {
	var resp *dto.WizardSessionResponse
	err := s.store.Update(id, func(sess *lifecycle.Session) error {
		if err := fn(sess); err != nil {
			return err
		}
		resp = toSessionResponse(sess)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// SelectPriority 步骤 2 → 3
func (s *WizardService) SelectPriority(id string, prio int) (*dto.WizardSessionResponse, error) {
	return s.transition(id, func(sess *lifecycle.Session) error {
		cur, ok := sess.State.(*lifecycle.PrioritySelection)
		if !ok {
			return lifecycle.ErrFalscherSchritt
		}
		next, err := cur.SelectPriority(prio)
		if err != nil {
			return err
		}
		sess.State = next
		return nil
	})
}

// SelectDepartment 步骤 3 → 4；空字符串表示显式跳过，非空必须是已有部门
func (s *WizardService) SelectDepartment(ctx context.Context, id, abteilung string) (*dto.WizardSessionResponse, error) {
	abteilung = strings.TrimSpace(abteilung)
	if abteilung != "" {
		if _, err := s.deptRepo.GetByName(ctx, abteilung); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, err
		}
	}

	return s.transition(id, func(sess *lifecycle.Session) error {
		cur, ok := sess.State.(*lifecycle.DepartmentSelection)
		if !ok {
			return lifecycle.ErrFalscherSchritt
		}
		sess.State = cur.SelectDepartment(abteilung)
		return nil
	})
}

// SelectZusatzinfo 步骤 4 → 5；非空选择必须属于已选部门的候选列表
func (s *WizardService) SelectZusatzinfo(ctx context.Context, id, zusatzinfo string) (*dto.WizardSessionResponse, error) {
	zusatzinfo = strings.TrimSpace(zusatzinfo)

	if zusatzinfo != "" {
		sess, err := s.store.Get(id)
		if err != nil {
			return nil, err
		}
		cur, ok := sess.State.(*lifecycle.ZusatzinfoSelection)
		if !ok {
			return nil, lifecycle.ErrFalscherSchritt
		}
		if err := s.validateZusatzinfo(ctx, cur.Abteilung, zusatzinfo); err != nil {
			return nil, err
		}
	}

	return s.transition(id, func(sess *lifecycle.Session) error {
		cur, ok := sess.State.(*lifecycle.ZusatzinfoSelection)
		if !ok {
			return lifecycle.ErrFalscherSchritt
		}
		sess.State = cur.SelectZusatzinfo(zusatzinfo)
		return nil
	})
}

func (s *WizardService) validateZusatzinfo(ctx context.Context, abteilung, zusatzinfo string) error {
	if abteilung == "" {
		// 部门被跳过时没有候选列表可校验
		return ErrZusatzinfoNotFound
	}
	dept, err := s.deptRepo.GetByName(ctx, abteilung)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		return err
	}
	infos, err := s.infoRepo.ListByDepartmentID(ctx, dept.ID)
	if err != nil {
		return err
	}
	for _, info := range infos {
		if info.Name == zusatzinfo {
			return nil
		}
	}
	return ErrZusatzinfoNotFound
}

// Media 步骤 5 的媒体动作。
// preview/record 只驱动采集设备；video/text 立即落一条附件记录并带着
// 展示字符串进入最终确认；skip 直接进入最终确认。
func (s *WizardService) Media(ctx context.Context, id string, req *dto.WizardMediaRequest) (*dto.WizardSessionResponse, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	switch req.Action {
	case "preview":
		if _, ok := sess.State.(*lifecycle.MediaSelection); !ok {
			return nil, lifecycle.ErrFalscherSchritt
		}
		if err := sess.Device.StartPreview(ctx); err != nil {
			return nil, err
		}
		return toSessionResponse(sess), nil

	case "record":
		if _, ok := sess.State.(*lifecycle.MediaSelection); !ok {
			return nil, lifecycle.ErrFalscherSchritt
		}
		if err := sess.Device.StartRecording(ctx); err != nil {
			return nil, err
		}
		return toSessionResponse(sess), nil

	case "video":
		return s.resolveMedia(id, func(cur *lifecycle.MediaSelection) (string, error) {
			if err := sess.Device.Release(ctx); err != nil {
				return "", err
			}
			_, err := s.media.Create(ctx, &dto.CreateMediaRequest{
				Auftragsnummer: cur.Auftragsnummer,
				FileType:       model.MediaTypeVideo,
			}, req.FilePath)
			if err != nil {
				return "", err
			}
			return lifecycle.VideoInfo(s.now()), nil
		})

	case "text":
		return s.resolveMedia(id, func(cur *lifecycle.MediaSelection) (string, error) {
			_, err := s.media.Create(ctx, &dto.CreateMediaRequest{
				Auftragsnummer: cur.Auftragsnummer,
				FileType:       model.MediaTypeText,
				Content:        req.Content,
			}, "")
			if err != nil {
				return "", err
			}
			return "Textnotiz hinzugefügt", nil
		})

	case "skip":
		return s.resolveMedia(id, func(*lifecycle.MediaSelection) (string, error) {
			_ = sess.Device.Release(ctx)
			return "", nil
		})

	default:
		return nil, ErrUnknownMediaAction
	}
}

// resolveMedia 以唯一结果离开媒体步骤（步骤 5 → 6）
func (s *WizardService) resolveMedia(id string, fn func(*lifecycle.MediaSelection) (string, error)) (*dto.WizardSessionResponse, error) {
	return s.transition(id, func(sess *lifecycle.Session) error {
		cur, ok := sess.State.(*lifecycle.MediaSelection)
		if !ok {
			return lifecycle.ErrFalscherSchritt
		}
		mediaInfo, err := fn(cur)
		if err != nil {
			return err
		}
		sess.State = cur.Resolve(mediaInfo)
		return nil
	})
}

// Confirm 步骤 6：确定最终优先级并创建工单（唯一的落库时点）。
// prio 为 0 时沿用步骤 2 的预选值；同一业务键已有未完成工单时返回
// ErrOpenOrderExists，会话停留在确认步骤。
func (s *WizardService) Confirm(ctx context.Context, id string, prio int) (*model.ScanOrder, error) {
	var order *model.ScanOrder
	err := s.store.Update(id, func(sess *lifecycle.Session) error {
		cur, ok := sess.State.(*lifecycle.FinalConfirmation)
		if !ok {
			return lifecycle.ErrFalscherSchritt
		}

		final, err := cur.Confirm(prio)
		if err != nil {
			return err
		}

		req := &dto.CreateOrderRequest{
			Auftragsnummer: cur.Auftragsnummer,
			Prioritaet:     final,
			Abteilung:      cur.Abteilung,
			Zusatzinfo:     cur.Zusatzinfo,
		}
		if cur.MediaInfo != "" {
			req.ZusatzDaten = map[string]interface{}{"mediaInfo": cur.MediaInfo}
		}

		created, err := s.orders.CreateOrder(ctx, req)
		if err != nil {
			return err
		}

		order = created
		sess.State = cur.Finish(created.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 会话保留在终态直到过期清扫：成功后重复确认会命中步骤校验
	if sess, getErr := s.store.Get(id); getErr == nil && sess.Device != nil {
		_ = sess.Device.Release(ctx)
	}
	s.log.Info("向导已完成, 工单已创建",
		zap.String("session_id", id),
		zap.Uint("order_id", order.ID),
		zap.Int("prioritaet", order.Prioritaet))
	return order, nil
}

// Abandon 放弃会话（任意步骤可调；释放采集设备，不产生持久化）
func (s *WizardService) Abandon(ctx context.Context, id string) {
	s.store.Abandon(ctx, id)
	s.log.Info("向导会话已放弃", zap.String("session_id", id))
}

func toSessionResponse(sess *lifecycle.Session) *dto.WizardSessionResponse {
	resp := &dto.WizardSessionResponse{
		ID:   sess.ID,
		Step: string(sess.State.Step()),
	}
	switch st := sess.State.(type) {
	case *lifecycle.PrioritySelection:
		resp.Auftragsnummer = st.Auftragsnummer
	case *lifecycle.DepartmentSelection:
		resp.Auftragsnummer = st.Auftragsnummer
		resp.Prioritaet = st.Prioritaet
	case *lifecycle.ZusatzinfoSelection:
		resp.Auftragsnummer = st.Auftragsnummer
		resp.Prioritaet = st.Prioritaet
		resp.Abteilung = st.Abteilung
	case *lifecycle.MediaSelection:
		resp.Auftragsnummer = st.Auftragsnummer
		resp.Prioritaet = st.Prioritaet
		resp.Abteilung = st.Abteilung
		resp.Zusatzinfo = st.Zusatzinfo
	case *lifecycle.FinalConfirmation:
		resp.Auftragsnummer = st.Auftragsnummer
		resp.Prioritaet = st.Prioritaet
		resp.Abteilung = st.Abteilung
		resp.Zusatzinfo = st.Zusatzinfo
		resp.MediaInfo = st.MediaInfo
	case *lifecycle.Done:
		resp.Auftragsnummer = st.Auftragsnummer
	}
	return resp
}
