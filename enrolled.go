package bondcurve

import (
	"fmt"

	"github.com/robfig/cron"
)

const (
	TickSpec     = "0 */15 * * * *"
	AuditSpec    = "0 5 * * * *"
	SnapshotSpec = "0 0 7 * * *"
	ParitySpec   = "0 */30 * * * *"
)

func (e *CurveEngine) Run() {
	e.lg.Info().Msg("Starting EventHandler Run")
	c := cron.New()

	for _, enrolled := range e.enrolledEvents {
		if enrolled.schedule == "" {
			continue
		}
		c.AddFunc(enrolled.schedule, func() {
			if enrolled.IsActive {
				enrolled.Event(false)
			}
		})
	}

	c.Start()
	e.lg.Info().Msg("EventHandler Run completed")
}

type EnrolledEvent struct {
	Id          uint
	Title       string
	Description string
	IsActive    bool
	schedule    string
	Event       func(WayOfLaunch)
}

type WayOfLaunch bool

const (
	Manual WayOfLaunch = true
	Auto   WayOfLaunch = false
)

func (e *CurveEngine) Events() []*EnrolledEvent {
	return e.enrolledEvents
}

func (e *CurveEngine) LaunchEvent(id uint) error {
	for _, event := range e.enrolledEvents {
		if event.Id == id {
			go event.Event(Manual)
			return nil
		}
	}
	return fmt.Errorf("등록되지 않은 event id : %d", id)
}

func (e *CurveEngine) SetEventStatus(id uint, active bool) error {
	for _, event := range e.enrolledEvents {
		if event.Id == id {
			event.IsActive = active
			return e.stg.UpdateEventIsActive(id, active)
		}
	}
	return fmt.Errorf("등록되지 않은 event id : %d", id)
}

func (e *CurveEngine) registerEvents() {
	e.enrolledEvents = []*EnrolledEvent{
		{
			Id:          1,
			Title:       "가격 틱 기록",
			Description: "현재 스팟 가격을 주기적으로 기록.\n15분 주기로 실행",
			schedule:    TickSpec,
			Event:       e.runPriceTickEvent,
		},
		{
			Id:          2,
			Title:       "리저브 점검",
			Description: "리저브 잔고가 매도 수요를 감당 가능한지 점검.\n부족 시 알림. 매시 5분 실행",
			schedule:    AuditSpec,
			Event:       e.runReserveAuditEvent,
		},
		{
			Id:          3,
			Title:       "일일 스냅샷",
			Description: "공급량, 리저브, 시가총액 일일 기록.\n매일 오전 7시 실행",
			schedule:    SnapshotSpec,
			Event:       e.runDailySnapshotEvent,
		},
		{
			Id:          4,
			Title:       "온체인 괴리 확인",
			Description: "온체인 컨트랙트 가격과 로컬 커브 가격의 괴리 확인.\n1% 초과 시 알림. 30분 주기로 실행",
			schedule:    ParitySpec,
			Event:       e.runMirrorParityEvent,
		},
	}

	for _, event := range e.enrolledEvents {
		event.IsActive = e.stg.RetreiveEventIsActive(event.Id)
	}
}
