package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO answer_events
		(sequence, timestamp, session_id, item_index, item_id, cluster_id, round_id, times_seen, response, latency_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UTC(), data.SessionID, data.ItemIndex, data.ItemID,
		data.ClusterID, data.RoundID, data.TimesSeen, data.Response, data.LatencyMs,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) SessionAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT sequence, timestamp, session_id, item_index, item_id,
		cluster_id, round_id, times_seen, response, latency_ms
		FROM answer_events WHERE session_id = ? ORDER BY sequence`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query session answers: %w", err)
	}
	defer rows.Close()

	var records []AnswerRecord
	for rows.Next() {
		var rec AnswerRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.SessionID, &rec.ItemIndex, &rec.ItemID,
			&rec.ClusterID, &rec.RoundID, &rec.TimesSeen, &rec.Response, &rec.LatencyMs); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query session answers: %w", err)
	}
	return records, nil
}

func (r *eventRepo) AppendClusterAssignments(ctx context.Context, sessionID string, data []ClusterAssignmentData) error {
	if len(data) == 0 {
		return nil
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cluster assignments: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, d := range data {
		_, err := tx.ExecContext(ctx, `INSERT INTO cluster_assignments
			(sequence, timestamp, session_id, cluster_id, item_index, item_id)
			VALUES (?, ?, ?, ?, ?, ?)`,
			seqNum, now, sessionID, d.ClusterID, d.ItemIndex, d.ItemID)
		if err != nil {
			return fmt.Errorf("save cluster assignment: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cluster assignments: %w", err)
	}
	return nil
}

func (r *eventRepo) ClusterAssignments(ctx context.Context, sessionID string) ([]ClusterAssignmentData, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT cluster_id, item_index, item_id
		FROM cluster_assignments WHERE session_id = ? ORDER BY cluster_id, item_index`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query cluster assignments: %w", err)
	}
	defer rows.Close()

	var out []ClusterAssignmentData
	for rows.Next() {
		var d ClusterAssignmentData
		if err := rows.Scan(&d.ClusterID, &d.ItemIndex, &d.ItemID); err != nil {
			return nil, fmt.Errorf("scan cluster assignment: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query cluster assignments: %w", err)
	}
	return out, nil
}
