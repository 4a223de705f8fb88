package mq

import "go.uber.org/zap"

// Discard stands in for the broker when MQ is disabled: events are logged at
// debug level and dropped.
type Discard struct {
	log *zap.Logger
}

func NewDiscard(logger *zap.Logger) *Discard { return &Discard{log: logger} }

func (d *Discard) Publish(e Event) bool {
	d.log.Debug("mq disabled, event discarded", zap.String("action", e.Method), zap.String("user_id", e.UserID))
	return true
}
