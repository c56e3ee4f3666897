package stores

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rayafarhadi/text-marketing-app/core"
	"github.com/rayafarhadi/text-marketing-app/helpers"
)

const scanPageSize = 100

// CustomersTable reads the customer list from a DynamoDB table, one scan page at a time.
type CustomersTable struct {
	client    dynamodb.ScanAPIClient
	tableName string
	columns   CustomerColumns
	timeout   time.Duration
}

func InitializeCustomersTable(cfg aws.Config, tableName string, columns CustomerColumns, timeout time.Duration, endpointURL *string) (*CustomersTable, error) {
	if tableName == "" {
		return nil, fmt.Errorf("tableName is not specified")
	}
	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpointURL != nil {
			o.BaseEndpoint = aws.String(*endpointURL)
		}
	})
	return NewCustomersTable(client, tableName, columns, timeout), nil
}

func NewCustomersTable(client dynamodb.ScanAPIClient, tableName string, columns CustomerColumns, timeout time.Duration) *CustomersTable {
	return &CustomersTable{client: client, tableName: tableName, columns: columns.withDefaults(), timeout: timeout}
}

func (table *CustomersTable) OpenCustomers(ctx context.Context) (core.CustomerReader, error) {
	paginator := dynamodb.NewScanPaginator(table.client, table.scanInput())
	return &tableCustomerReader{ctx: ctx, table: table, paginator: paginator}, nil
}

func (table *CustomersTable) scanInput() *dynamodb.ScanInput {
	return &dynamodb.ScanInput{
		TableName: aws.String(table.tableName),
		Limit:     aws.Int32(scanPageSize),
	}
}

type tableCustomerReader struct {
	ctx       context.Context
	table     *CustomersTable
	paginator *dynamodb.ScanPaginator
	page      []map[string]types.AttributeValue
}

func (reader *tableCustomerReader) Read() (core.CustomerRecord, error) {
	for len(reader.page) == 0 {
		if !reader.paginator.HasMorePages() {
			return core.CustomerRecord{}, io.EOF
		}
		if err := reader.nextPage(); err != nil {
			return core.CustomerRecord{}, err
		}
	}
	item := reader.page[0]
	reader.page = reader.page[1:]
	return reader.table.toCustomerRecord(item)
}

func (reader *tableCustomerReader) nextPage() error {
	ctx, cancel := context.WithTimeout(reader.ctx, reader.table.timeout)
	defer cancel()
	scanPage, err := reader.paginator.NextPage(ctx)
	if err != nil {
		return fmt.Errorf("error fetching next scan page of table='%s': %v", reader.table.tableName, describeAPIError(err))
	}
	reader.page = scanPage.Items
	return nil
}

func (reader *tableCustomerReader) Close() error {
	reader.page = nil
	return nil
}

func (table *CustomersTable) toCustomerRecord(item map[string]types.AttributeValue) (core.CustomerRecord, error) {
	var values map[string]any
	if err := attributevalue.UnmarshalMap(item, &values); err != nil {
		return core.CustomerRecord{}, fmt.Errorf("error on UnmarshalMap over customer item: %v", err)
	}
	record := core.CustomerRecord{}
	if phone, ok := lookup(values, table.columns.Phone); ok {
		switch v := phone.(type) {
		case float64:
			record.Phone = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			record.Phone = strings.TrimSpace(fmt.Sprint(v))
		}
	}
	if unsubscribed, ok := lookup(values, table.columns.Unsubscribed); ok {
		switch v := unsubscribed.(type) {
		case bool:
			record.Unsubscribed = v
		case string:
			record.Unsubscribed = helpers.IsUnsubscribed(v)
		}
	}
	return record, nil
}

// lookup prefers an attribute named exactly as configured, then the first
// case-insensitive match in sorted key order.
func lookup(values map[string]any, name string) (any, bool) {
	if value, ok := values[name]; ok {
		return value, value != nil
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if strings.EqualFold(key, name) {
			value := values[key]
			return value, value != nil
		}
	}
	return nil, false
}
