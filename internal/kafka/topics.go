package kafka

import (
	"log"
	"net"
	"strconv"

	"github.com/segmentio/kafka-go"
)

const (
	TopicEventCreated          = "events.event.created"
	TopicRegistrationCreated   = "events.registration.created"
	TopicRegistrationCancelled = "events.registration.cancelled"
)

// RequiredTopics lists every topic the service publishes to.
func RequiredTopics() []string {
	return []string{
		TopicEventCreated,
		TopicRegistrationCreated,
		TopicRegistrationCancelled,
	}
}

// EnsureTopicsExist creates the given topics on the cluster controller if
// they are missing. A failure on one topic does not stop the others.
func EnsureTopicsExist(brokers []string, topics []string) error {
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return err
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return err
	}
	defer controllerConn.Close()

	for _, topic := range topics {
		err = controllerConn.CreateTopics(kafka.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
		if err != nil {
			log.Printf("Error creating topic %s: %v", topic, err)
			continue
		}
		log.Printf("Ensured topic: %s", topic)
	}
	return nil
}
