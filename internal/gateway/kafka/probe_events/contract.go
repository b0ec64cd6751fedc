//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=probe_events_test
package probe_events

import (
	"github.com/IBM/sarama"
)

type producer interface {
	SendMessage(msg *sarama.ProducerMessage) (partition int32, offset int64, err error)
	Close() error
}
