package integration

import (
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tsuite "github.com/stretchr/testify/suite"
	tc "github.com/testcontainers/testcontainers-go"

	"github.com/joewashear007/n8n-nodes-clickhouse/core"
	"github.com/joewashear007/n8n-nodes-clickhouse/core/mock"
	"github.com/joewashear007/n8n-nodes-clickhouse/nodes"
	th "github.com/joewashear007/n8n-nodes-clickhouse/tests/testhelpers"
)

// ClickHouseTestSuite is the test suite for the clickhouse node.
type ClickHouseTestSuite struct {
	tsuite.Suite
	ctr  *th.ClickHouseContainer
	ctx  context.Context
	node core.Node
}

func TestClickHouseTestSuite(t *testing.T) {
	tsuite.Run(t, new(ClickHouseTestSuite))
}

func (suite *ClickHouseTestSuite) SetupSuite() {
	suite.ctx = context.Background()

	ctr, err := th.NewClickHouseContainer(suite.ctx)
	if err != nil {
		log.Fatal(err)
	}
	suite.ctr = ctr

	node, err := nodes.Get("clickhouse")
	if err != nil {
		log.Fatal(err)
	}
	suite.node = node
}

func (suite *ClickHouseTestSuite) TearDownSuite() {
	tc.CleanupContainer(suite.T(), suite.ctr)
}

func (suite *ClickHouseTestSuite) TestShouldQuerySeededRows() {
	t := suite.T()

	ec := mock.NewContext(
		mock.WithParameter("operation", "query"),
		mock.WithParameter("query", "SELECT id, username FROM test.test_table ORDER BY id"),
		mock.WithCredentials("clickHouseApi", suite.ctr.Credentials),
	)

	items, err := suite.node.Execute(suite.ctx, ec)
	require.NoError(t, err)

	want := []core.Item{
		{JSON: map[string]any{"id": uint32(1), "username": "john_doe"}},
		{JSON: map[string]any{"id": uint32(2), "username": "jane_smith"}},
	}
	assert.Equal(t, want, items)
}

func (suite *ClickHouseTestSuite) TestShouldApplyMaxResults() {
	t := suite.T()

	ec := mock.NewContext(
		mock.WithParameter("operation", "query"),
		mock.WithParameter("query", "SELECT id FROM test.test_table ORDER BY id"),
		mock.WithParameter("options", map[string]any{"maxResults": 1}),
		mock.WithCredentials("clickHouseApi", suite.ctr.Credentials),
	)

	items, err := suite.node.Execute(suite.ctx, ec)
	require.NoError(t, err)

	assert.Len(t, items, 1)
}

func (suite *ClickHouseTestSuite) TestShouldRejectMutatingQuery() {
	t := suite.T()

	ec := mock.NewContext(
		mock.WithParameter("operation", "query"),
		mock.WithParameter("query", "DROP TABLE test.test_table"),
		mock.WithCredentials("clickHouseApi", suite.ctr.Credentials),
	)

	_, err := suite.node.Execute(suite.ctx, ec)
	assert.ErrorIs(t, err, nodes.ErrQueryNotReadOnly)
}

func (suite *ClickHouseTestSuite) TestShouldErrorInvalidQuery() {
	t := suite.T()

	ec := mock.NewContext(
		mock.WithParameter("operation", "query"),
		mock.WithParameter("query", "SELECT * FROM test.missing_table"),
		mock.WithCredentials("clickHouseApi", suite.ctr.Credentials),
	)

	_, err := suite.node.Execute(suite.ctx, ec)
	assert.ErrorContains(t, err, "missing_table")
}

func (suite *ClickHouseTestSuite) TestShouldInsertAndReadBack() {
	t := suite.T()

	insertCtx := mock.NewContext(
		mock.WithParameter("operation", "insert"),
		mock.WithParameter("table", "test.insert_target"),
		mock.WithParameter("options", map[string]any{"chunkSize": 2}),
		mock.WithCredentials("clickHouseApi", suite.ctr.Credentials),
		mock.WithInputPayloads(
			map[string]any{"id": 10, "name": "alpha"},
			map[string]any{"id": 11, "name": "beta"},
			map[string]any{"id": 12, "name": "gamma"},
			map[string]any{"id": 13, "name": "delta"},
			map[string]any{"id": 14, "name": "epsilon"},
		),
	)

	items, err := suite.node.Execute(suite.ctx, insertCtx)
	require.NoError(t, err)
	assert.Empty(t, items)

	queryCtx := mock.NewContext(
		mock.WithParameter("operation", "query"),
		mock.WithParameter("query", "SELECT id, name FROM test.insert_target ORDER BY id"),
		mock.WithCredentials("clickHouseApi", suite.ctr.Credentials),
	)

	got, err := suite.node.Execute(suite.ctx, queryCtx)
	require.NoError(t, err)

	want := []core.Item{
		{JSON: map[string]any{"id": uint32(10), "name": "alpha"}},
		{JSON: map[string]any{"id": uint32(11), "name": "beta"}},
		{JSON: map[string]any{"id": uint32(12), "name": "gamma"}},
		{JSON: map[string]any{"id": uint32(13), "name": "delta"}},
		{JSON: map[string]any{"id": uint32(14), "name": "epsilon"}},
	}
	assert.Equal(t, want, got)
}

func (suite *ClickHouseTestSuite) TestShouldConnectWithFieldCredentials() {
	t := suite.T()

	credentials, err := suite.ctr.FieldCredentials()
	require.NoError(t, err)

	ec := mock.NewContext(
		mock.WithParameter("operation", "query"),
		mock.WithParameter("query", "SELECT 1 AS one"),
		mock.WithCredentials("clickHouseApi", credentials),
	)

	items, err := suite.node.Execute(suite.ctx, ec)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.EqualValues(t, 1, items[0].JSON["one"])
}

func (suite *ClickHouseTestSuite) TestShouldTestCredentials() {
	t := suite.T()

	result := suite.node.TestCredentials(suite.ctx, suite.ctr.Credentials)
	assert.Equal(t, core.TestStatusOK, result.Status)
	assert.Equal(t, "Connection successful!", result.Message)

	unreachable := &core.Credentials{Host: "localhost", Port: 1, Database: "default"}
	result = suite.node.TestCredentials(suite.ctx, unreachable)
	assert.Equal(t, core.TestStatusError, result.Status)
	assert.NotEmpty(t, result.Message)
}
