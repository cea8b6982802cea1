package events

const (
	ViewStateChanged = "view.state.changed"
	ViewUnmounted    = "view.unmounted"
	EmailBatchSent   = "email.batch.sent"
)

// ViewStateChangedEvent несёт свежий снимок вида.
type ViewStateChangedEvent struct {
	ViewID   string
	Kind     string
	Revision uint64
	Snapshot interface{}
}

func (e ViewStateChangedEvent) Name() string { return ViewStateChanged }

type ViewUnmountedEvent struct {
	ViewID string
	Kind   string
	Reason string
}

func (e ViewUnmountedEvent) Name() string { return ViewUnmounted }

// EmailBatchSentEvent публикуется один раз на запрос рассылки.
type EmailBatchSentEvent struct {
	UserID    uint64
	Provider  string
	Subject   string
	Requested int
	Sent      int
	Failed    int
}

func (e EmailBatchSentEvent) Name() string { return EmailBatchSent }
