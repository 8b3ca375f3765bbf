package recorder

import "HoyoSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSnapshot(_ string, _ model.RecoveryState) error { return nil }
func (n *NoopRecorder) RecordEvent(_ string, _ model.Event) error            { return nil }
func (n *NoopRecorder) RecordClaim(_ *ClaimRecord) error                     { return nil }
func (n *NoopRecorder) RecentEvents(_ string, _ int) ([]EventRecord, error) { return nil, nil }
func (n *NoopRecorder) Close() error                                         { return nil }
