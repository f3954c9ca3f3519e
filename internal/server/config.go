package server

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

type Config struct {
	// Addr is host:port; an empty host listens on all interfaces.
	Addr     string
	UseHttp2 bool
}

func NewConfig(addr string) (*Config, error) {
	if err := validateAddr(addr); err != nil {
		return nil, fmt.Errorf("invalid status address: %w", err)
	}
	return &Config{Addr: addr}, nil
}

func validateAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 0 || portNum > 65535 {
		return errors.New("port must be between 0 and 65535")
	}

	return nil
}
