package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/Panorama-Block/zico-agents-sub000/internal/extract"
	"github.com/Panorama-Block/zico-agents-sub000/internal/model"
	"github.com/Panorama-Block/zico-agents-sub000/internal/router"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/gcalendar"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/log"
)

// Calendar is the slice of the Google Calendar client the handler needs.
type Calendar interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
}

// dcaMachine is the recurring-purchase machine surface. Unlike the simple
// slot machines it consumes the raw message text for schedule parsing and
// confirmation words.
type dcaMachine interface {
	Update(ctx context.Context, scope model.Scope, text string, params extract.Params) (workflow.Result, error)
	Reset(ctx context.Context, scope model.Scope, reason string) error
}

// DCAHandler drives the recurring-purchase workflow and, once a plan is
// confirmed, schedules a recurring calendar reminder for it. The reminder
// is best effort; a calendar failure never blocks the reply.
type DCAHandler struct {
	machine    dcaMachine
	calendar   Calendar
	calendarID string
	timezone   string
	logger     log.Logger
}

var _ Handler = (*DCAHandler)(nil)

func NewDCAHandler(machine dcaMachine, calendar Calendar, calendarID, timezone string, logger log.Logger) *DCAHandler {
	return &DCAHandler{
		machine:    machine,
		calendar:   calendar,
		calendarID: calendarID,
		timezone:   timezone,
		logger:     logger,
	}
}

func (h *DCAHandler) Name() string { return router.HandlerDCA }

func (h *DCAHandler) Handle(ctx context.Context, turn *Turn) (*Reply, error) {
	if IsCancellation(turn.Text) {
		if err := h.machine.Reset(ctx, turn.Scope, "user cancelled"); err != nil {
			return nil, fmt.Errorf("agent.DCAHandler.Handle: reset: %w", err)
		}
		return &Reply{Handler: h.Name(), Text: cancelledReply}, nil
	}

	res, err := h.machine.Update(ctx, turn.Scope, turn.Text, turn.Params)
	if err != nil {
		return nil, fmt.Errorf("agent.DCAHandler.Handle: update: %w", err)
	}

	text := resultText(&res)
	if res.Stage == workflow.StageReady {
		if link := h.scheduleReminder(ctx, &res); link != "" {
			text += " I've added a recurring reminder to your calendar: " + link
		}
	}
	return &Reply{Handler: h.Name(), Text: text, Result: &res}, nil
}

// scheduleReminder creates the recurring calendar event for a completed
// plan and returns its link, or "" when scheduling was skipped or failed.
func (h *DCAHandler) scheduleReminder(ctx context.Context, res *workflow.Result) string {
	if h.calendar == nil {
		return ""
	}
	startOn, _ := res.Metadata["start_on"].(string)
	rrule, _ := res.Metadata["rrule"].(string)
	if startOn == "" || rrule == "" {
		return ""
	}
	start, err := time.Parse("2006-01-02", startOn)
	if err != nil {
		h.logger.Warnf(ctx, "agent.DCAHandler.scheduleReminder: bad start date %q: %v", startOn, err)
		return ""
	}

	summary, _ := res.Metadata["summary"].(string)
	event, err := h.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:  h.calendarID,
		Summary:     "DCA buy reminder",
		Description: summary,
		StartTime:   start.Add(9 * time.Hour),
		EndTime:     start.Add(9*time.Hour + 15*time.Minute),
		Timezone:    h.timezone,
		Recurrence:  []string{"RRULE:" + rrule},
	})
	if err != nil {
		h.logger.Warnf(ctx, "agent.DCAHandler.scheduleReminder: create event: %v", err)
		return ""
	}
	return event.HtmlLink
}
