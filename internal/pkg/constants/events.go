package constants

// Event subjects, shared by the NATS subjects and NSQ topics
const (
	SubjectDriverPresence = "driver.presence"
	SubjectDriverLocation = "driver.location"
)

// Event brokers selectable through EVENTS_BROKER
const (
	BrokerNATS = "nats"
	BrokerNSQ  = "nsq"
	BrokerNone = "none"
)
