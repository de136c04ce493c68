package testhelpers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"

	"github.com/joewashear007/n8n-nodes-clickhouse/core"
)

type ClickHouseContainer struct {
	*clickhouse.ClickHouseContainer
	ConnURL     string
	Credentials *core.Credentials
}

// NewClickHouseContainer creates a new clickhouse container seeded with the
// test schema. Credentials carry the container connection string, so nodes
// connect through the DSN path.
func NewClickHouseContainer(ctx context.Context) (*ClickHouseContainer, error) {
	seedFile, err := GetTestDataFile("clickhouse_seed.sql")
	if err != nil {
		return nil, err
	}

	ctr, err := clickhouse.Run(
		ctx,
		"clickhouse/clickhouse-server:25.1-alpine",
		tc.CustomizeRequest(tc.GenericContainerRequest{
			ProviderType: GetContainerProvider(),
		}),
		clickhouse.WithUsername("admin"),
		clickhouse.WithPassword(""),
		clickhouse.WithDatabase("dev"),
		clickhouse.WithInitScripts(seedFile.Name()),
	)
	if err != nil {
		return nil, err
	}

	connURL, err := ctr.ConnectionString(ctx)
	if err != nil {
		return nil, err
	}

	return &ClickHouseContainer{
		ClickHouseContainer: ctr,
		ConnURL:             connURL,
		Credentials:         &core.Credentials{DSN: connURL},
	}, nil
}

// FieldCredentials derives field based credentials from the connection
// string, for exercising the non DSN connect path.
func (p *ClickHouseContainer) FieldCredentials() (*core.Credentials, error) {
	u, err := url.Parse(p.ConnURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}

	port, err := strconv.Atoi(u.Port())
	if err != nil {
		return nil, fmt.Errorf("strconv.Atoi: %w", err)
	}

	password, _ := u.User.Password()

	return &core.Credentials{
		Host:     u.Hostname(),
		Port:     port,
		Database: strings.TrimPrefix(u.Path, "/"),
		Username: u.User.Username(),
		Password: password,
	}, nil
}
