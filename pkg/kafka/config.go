package kafka

import (
	"errors"
	"fmt"
)

// SASL mechanisms understood by NewProducer.
const (
	SASLPlain       = "PLAIN"
	SASLScramSHA256 = "SCRAM-SHA-256"
	SASLScramSHA512 = "SCRAM-SHA-512"
)

// Config describes how a client reaches the brokers. An empty SASLMechanism
// with SASLEnabled means PLAIN.
type Config struct {
	ClientID      string
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	Brokers       []string
	TLS           bool
	SASLEnabled   bool
}

// Validate reports every problem that would make NewProducer fail or the
// first broker handshake be rejected.
func (c Config) Validate() error {
	var errs []error
	if len(c.Brokers) == 0 {
		errs = append(errs, errors.New("at least one broker is required"))
	}
	if c.SASLEnabled {
		switch c.SASLMechanism {
		case "", SASLPlain, SASLScramSHA256, SASLScramSHA512:
		default:
			errs = append(errs, fmt.Errorf("unsupported SASL mechanism %q", c.SASLMechanism))
		}
		if c.SASLUsername == "" || c.SASLPassword == "" {
			errs = append(errs, errors.New("SASL username and password are required"))
		}
	}
	return errors.Join(errs...)
}
