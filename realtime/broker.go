// Package realtime fans row-change events out to websocket clients.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
)

const TopicMessages = "messages"

func UserMessagesTopic(userId uint) string {
	return fmt.Sprintf("messages:user:%d", userId)
}

func NotificationsTopic(userId uint) string {
	return fmt.Sprintf("notifications:%d", userId)
}

// SessionTopic carries sign-in and sign-out changes of one user's session.
func SessionTopic(userId uint) string {
	return fmt.Sprintf("sessions:%d", userId)
}

const (
	KindInsert  = "INSERT"
	KindUpdate  = "UPDATE"
	KindSignIn  = "SIGNED_IN"
	KindSignOut = "SIGNED_OUT"
)

// Event is one change notification. Record holds the JSON encoding of the changed row.
type Event struct {
	Topic  string          `json:"topic"`
	Kind   string          `json:"kind"`
	Table  string          `json:"table"`
	Record json.RawMessage `json:"record"`
}

func NewEvent(topic, kind, table string, record any) (Event, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return Event{}, fmt.Errorf("encode %s record: %w", table, err)
	}
	return Event{Topic: topic, Kind: kind, Table: table, Record: raw}, nil
}

// Decode unmarshals the record into out.
func (e Event) Decode(out any) error {
	return json.Unmarshal(e.Record, out)
}

// Broker publishes events to topics. A subscription stays open until cancel is called or ctx ends;
// the channel is closed afterwards.
type Broker interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(ctx context.Context, topic string) (<-chan Event, func(), error)
	Close() error
}
