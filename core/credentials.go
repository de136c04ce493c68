package core

import (
	"fmt"
	"net"
	"strconv"
)

// DefaultPort is the ClickHouse native protocol port.
const DefaultPort = 9000

// Credentials hold the decrypted connection secrets a host hands to a node.
type Credentials struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
	// Secure enables TLS on the client connection.
	Secure bool `json:"secure"`
	// DSN overrides the field based configuration when set. It is parsed
	// by the client library as a connection string.
	DSN string `json:"dsn,omitempty"`
}

// Addr returns the host:port address, falling back to the default port.
func (c *Credentials) Addr() string {
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}

	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

// String renders the credentials without the password, for logs.
func (c *Credentials) String() string {
	return fmt.Sprintf("%s@%s/%s", c.Username, c.Addr(), c.Database)
}

// TestStatus is the two valued outcome of a credential test.
type TestStatus string

const (
	TestStatusOK    TestStatus = "OK"
	TestStatusError TestStatus = "Error"
)

// CredentialTestResult reports a credential test back to the host. A failed
// probe is carried in the message, never as a Go error.
type CredentialTestResult struct {
	Status  TestStatus `json:"status"`
	Message string     `json:"message"`
}
