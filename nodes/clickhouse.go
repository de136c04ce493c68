package nodes

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"sort"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/joewashear007/n8n-nodes-clickhouse/core"
)

// Register node
func init() {
	_ = register(NewClickhouse(), "clickhouse", "clickHouse")
}

const (
	// clickhouseCredentials is the credential kind the node requests from
	// the host secret store.
	clickhouseCredentials = "clickHouseApi"

	paramOperation = "operation"
	paramQuery     = "query"
	paramTable     = "table"
	paramOptions   = "options"

	optionSchemaDescription = "schemaDescription"
	optionReadOnly          = "readOnly"
	optionMaxResults        = "maxResults"
	optionChunkSize         = "chunkSize"

	// schema defaults, also applied when the host omits an option
	defaultReadOnly   = true
	defaultMaxResults = 100
	defaultChunkSize  = 0
)

var (
	errEmptyQuery      = errors.New("query parameter is empty")
	errEmptyTable      = errors.New("table parameter is empty")
	errNoInsertColumns = errors.New("cannot derive insert columns: first input item has an empty payload")
)

var _ core.Node = (*Clickhouse)(nil)

// Clickhouse runs queries and bulk inserts against a ClickHouse server. A
// fresh connection is opened for every invocation and closed before it
// returns.
type Clickhouse struct {
	// connect is swappable in tests to avoid a live server.
	connect func(credentials *core.Credentials) (*clickhouseDriver, error)
}

func NewClickhouse() *Clickhouse {
	return &Clickhouse{
		connect: connectClickhouse,
	}
}

// connectClickhouse builds client options from credentials and opens the
// database handle. The handle connects lazily - a bad address surfaces on
// first use, not here.
func connectClickhouse(credentials *core.Credentials) (*clickhouseDriver, error) {
	options, err := clickhouseOptions(credentials)
	if err != nil {
		return nil, err
	}

	return &clickhouseDriver{db: clickhouse.OpenDB(options)}, nil
}

func clickhouseOptions(credentials *core.Credentials) (*clickhouse.Options, error) {
	if credentials.DSN != "" {
		options, err := clickhouse.ParseDSN(credentials.DSN)
		if err != nil {
			return nil, fmt.Errorf("could not parse db connection string: %w", err)
		}

		return options, nil
	}

	options := &clickhouse.Options{
		Addr: []string{credentials.Addr()},
		Auth: clickhouse.Auth{
			Database: credentials.Database,
			Username: credentials.Username,
			Password: credentials.Password,
		},
	}
	if credentials.Secure {
		options.TLS = &tls.Config{}
	}

	return options, nil
}

func (c *Clickhouse) Definition() *core.NodeDefinition {
	return &core.NodeDefinition{
		Name:        "clickhouse",
		DisplayName: "ClickHouse",
		Description: "Run queries against a ClickHouse database and insert items into it",
		Group:       "transform",
		Version:     1,
		Inputs:      []string{"main"},
		Outputs:     []string{"main"},
		Credentials: []core.CredentialsDefinition{clickhouseCredentialsDefinition()},
		Properties: []core.Property{
			{
				Name:        paramOperation,
				DisplayName: "Operation",
				Type:        core.PropertyTypeOptions,
				Default:     core.OperationQuery.String(),
				Options: []core.PropertyOption{
					{
						Name:        "Query",
						Value:       core.OperationQuery.String(),
						Description: "Execute a SQL query and return its rows as items",
					},
					{
						Name:        "Insert",
						Value:       core.OperationInsert.String(),
						Description: "Insert the input items into a table",
					},
				},
			},
			{
				Name:        paramQuery,
				DisplayName: "Query",
				Type:        core.PropertyTypeString,
				Required:    true,
				Description: "SQL statement to execute",
				ShowWhen:    map[string][]string{paramOperation: {core.OperationQuery.String()}},
			},
			{
				Name:        paramTable,
				DisplayName: "Table",
				Type:        core.PropertyTypeString,
				Required:    true,
				Description: "Table to insert the input items into",
				ShowWhen:    map[string][]string{paramOperation: {core.OperationInsert.String()}},
			},
			{
				Name:        paramOptions,
				DisplayName: "Options",
				Type:        core.PropertyTypeCollection,
				SubProperties: []core.Property{
					{
						Name:        optionSchemaDescription,
						DisplayName: "Schema Description",
						Type:        core.PropertyTypeString,
						Description: "Free form description of the queried schema. Advisory only, never enforced",
					},
					{
						Name:        optionReadOnly,
						DisplayName: "Read Only",
						Type:        core.PropertyTypeBoolean,
						Default:     defaultReadOnly,
						Description: "Reject statements other than SELECT, SHOW, DESCRIBE and DESC",
						ShowWhen:    map[string][]string{paramOperation: {core.OperationQuery.String()}},
					},
					{
						Name:        optionMaxResults,
						DisplayName: "Max Results",
						Type:        core.PropertyTypeNumber,
						Default:     defaultMaxResults,
						Description: "Append a LIMIT clause when the query has none. 0 leaves the query untouched",
						ShowWhen:    map[string][]string{paramOperation: {core.OperationQuery.String()}},
					},
					{
						Name:        optionChunkSize,
						DisplayName: "Chunk Size",
						Type:        core.PropertyTypeNumber,
						Default:     defaultChunkSize,
						Description: "Split the insert into batches of this many rows. 0 sends everything in one batch",
						ShowWhen:    map[string][]string{paramOperation: {core.OperationInsert.String()}},
					},
				},
			},
		},
	}
}

func clickhouseCredentialsDefinition() core.CredentialsDefinition {
	return core.CredentialsDefinition{
		Name:        clickhouseCredentials,
		DisplayName: "ClickHouse",
		Fields: []core.CredentialField{
			{
				Name:        "host",
				DisplayName: "Host",
				Type:        core.PropertyTypeString,
				Default:     "localhost",
				Required:    true,
			},
			{
				Name:        "port",
				DisplayName: "Port",
				Type:        core.PropertyTypeNumber,
				Default:     core.DefaultPort,
			},
			{
				Name:        "database",
				DisplayName: "Database",
				Type:        core.PropertyTypeString,
				Default:     "default",
				Required:    true,
			},
			{
				Name:        "username",
				DisplayName: "Username",
				Type:        core.PropertyTypeString,
				Default:     "default",
			},
			{
				Name:        "password",
				DisplayName: "Password",
				Type:        core.PropertyTypeString,
				Secret:      true,
			},
			{
				Name:        "secure",
				DisplayName: "Secure Connection",
				Type:        core.PropertyTypeBoolean,
				Default:     false,
				Description: "Connect over TLS",
			},
			{
				Name:        "dsn",
				DisplayName: "Connection String",
				Type:        core.PropertyTypeString,
				Description: "Optional DSN overriding the fields above",
			},
		},
	}
}

func (c *Clickhouse) Execute(ctx context.Context, ec core.ExecuteContext) ([]core.Item, error) {
	operation, err := core.OperationFromString(core.StringParameter(ec, paramOperation, ""))
	if err != nil {
		return nil, err
	}

	credentials, err := ec.Credentials(clickhouseCredentials)
	if err != nil {
		return nil, fmt.Errorf("ec.Credentials: %w", err)
	}

	driver, err := c.connect(credentials)
	if err != nil {
		return nil, err
	}
	defer driver.Close()

	switch operation {
	case core.OperationQuery:
		return c.executeQuery(ctx, ec, driver)
	case core.OperationInsert:
		return c.executeInsert(ctx, ec, driver)
	}

	// unreachable: OperationFromString covers all known values
	return nil, fmt.Errorf("unknown operation: %q", operation)
}

func (c *Clickhouse) executeQuery(ctx context.Context, ec core.ExecuteContext, driver *clickhouseDriver) ([]core.Item, error) {
	query := core.StringParameter(ec, paramQuery, "")
	if query == "" {
		return nil, errEmptyQuery
	}

	options := core.OptionsParameter(ec, paramOptions)

	if options.Bool(optionReadOnly, defaultReadOnly) {
		if err := validateReadOnlyQuery(query); err != nil {
			return nil, err
		}
	}

	query = applyMaxResults(query, options.Int(optionMaxResults, defaultMaxResults))

	stream, err := driver.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	header := stream.Header()

	var payloads []map[string]any
	for stream.HasNext() {
		row, err := stream.Next()
		if err != nil {
			return nil, err
		}

		payloads = append(payloads, core.RowPayload(header, row))
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}

	return ec.WrapItems(payloads), nil
}

func (c *Clickhouse) executeInsert(ctx context.Context, ec core.ExecuteContext, driver *clickhouseDriver) ([]core.Item, error) {
	table := core.StringParameter(ec, paramTable, "")
	if table == "" {
		return nil, errEmptyTable
	}

	items := ec.InputItems()
	if len(items) == 0 {
		return []core.Item{}, nil
	}

	columns, rows, err := insertRows(items)
	if err != nil {
		return nil, err
	}

	chunkSize := core.OptionsParameter(ec, paramOptions).Int(optionChunkSize, defaultChunkSize)
	if chunkSize <= 0 {
		chunkSize = len(rows)
	}

	for start := 0; start < len(rows); start += chunkSize {
		end := min(start+chunkSize, len(rows))
		if err := driver.Insert(ctx, table, columns, rows[start:end]); err != nil {
			return nil, err
		}
	}

	return []core.Item{}, nil
}

// insertRows derives the column list from the first item payload (sorted
// for a deterministic statement) and aligns every item to it. Missing keys
// become NULL, keys absent from the first payload are dropped.
func insertRows(items []core.Item) ([]string, []core.Row, error) {
	if len(items[0].JSON) == 0 {
		return nil, nil, errNoInsertColumns
	}

	columns := make([]string, 0, len(items[0].JSON))
	for column := range items[0].JSON {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	rows := make([]core.Row, len(items))
	for i, item := range items {
		row := make(core.Row, len(columns))
		for j, column := range columns {
			row[j] = item.JSON[column]
		}
		rows[i] = row
	}

	return columns, rows, nil
}

// TestCredentials opens a connection with candidate credentials and probes
// it with a trivial select. Failures become part of the result, never a Go
// error.
func (c *Clickhouse) TestCredentials(ctx context.Context, credentials *core.Credentials) *core.CredentialTestResult {
	driver, err := c.connect(credentials)
	if err != nil {
		return &core.CredentialTestResult{
			Status:  core.TestStatusError,
			Message: testErrorMessage(err),
		}
	}
	defer driver.Close()

	if err := driver.Probe(ctx); err != nil {
		return &core.CredentialTestResult{
			Status:  core.TestStatusError,
			Message: testErrorMessage(err),
		}
	}

	return &core.CredentialTestResult{
		Status:  core.TestStatusOK,
		Message: "Connection successful!",
	}
}

// testErrorMessage renders server exceptions as "[code] message", anything
// else verbatim.
func testErrorMessage(err error) string {
	var exception *clickhouse.Exception
	if errors.As(err, &exception) {
		return fmt.Sprintf("[%d] %s", exception.Code, exception.Message)
	}

	return err.Error()
}
