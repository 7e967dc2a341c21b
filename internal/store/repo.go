package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Session actions recorded in session_events.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures the start or end of a drill session.
type SessionEventData struct {
	SessionID    string
	Action       string
	Strategy     string
	Deck         string
	ItemCount    int
	ClusterCount int
	Rounds       []int
	Answers      int
	DurationSecs int
}

// ClusterAssignmentData records which cluster an item was placed in.
type ClusterAssignmentData struct {
	ClusterID int
	ItemIndex int
	ItemID    string
}

// AnswerEventData captures one answered presentation. ClusterID is -1 for
// selectors without clusters.
type AnswerEventData struct {
	SessionID string
	ItemIndex int
	ItemID    string
	ClusterID int
	RoundID   int
	TimesSeen int
	Response  string
	LatencyMs int64
}

// SessionSummaryRecord is one finished or abandoned session.
type SessionSummaryRecord struct {
	SessionID    string
	Timestamp    time.Time
	Strategy     string
	Deck         string
	ItemCount    int
	ClusterCount int
	Rounds       []int
	Answers      int
	DurationSecs int
}

// AnswerRecord is a stored answer event.
type AnswerRecord struct {
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// EventRepo provides append and query access to session transcripts.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendClusterAssignments records the partition a session started with.
	AppendClusterAssignments(ctx context.Context, sessionID string, data []ClusterAssignmentData) error

	// AppendAnswerEvent records one answered presentation.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QuerySessionSummaries returns ended sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// SessionAnswers returns a session's answers in the order they were given.
	SessionAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error)

	// ClusterAssignments returns a session's partition ordered by cluster.
	ClusterAssignments(ctx context.Context, sessionID string) ([]ClusterAssignmentData, error)
}
