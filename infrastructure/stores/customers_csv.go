package stores

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rayafarhadi/text-marketing-app/core"
	"github.com/rayafarhadi/text-marketing-app/helpers"
)

const defaultPhoneColumn = "phone"
const defaultUnsubscribedColumn = "unsubscribed"

// CustomerColumns names the phone and unsubscribed fields, matched without regard to case.
type CustomerColumns struct {
	Phone        string
	Unsubscribed string
}

func (columns CustomerColumns) withDefaults() CustomerColumns {
	if strings.TrimSpace(columns.Phone) == "" {
		columns.Phone = defaultPhoneColumn
	}
	if strings.TrimSpace(columns.Unsubscribed) == "" {
		columns.Unsubscribed = defaultUnsubscribedColumn
	}
	return columns
}

type CSVCustomerReader struct {
	body              io.ReadCloser
	reader            *csv.Reader
	phoneIndex        int
	unsubscribedIndex int
}

// NewCSVCustomerReader consumes the header row and fails if it has no phone column.
// A missing unsubscribed column means every row is subscribed.
func NewCSVCustomerReader(body io.ReadCloser, columns CustomerColumns) (*CSVCustomerReader, error) {
	columns = columns.withDefaults()
	reader := csv.NewReader(body)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("customers csv is empty")
		}
		return nil, fmt.Errorf("error reading csv header: %v", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	phoneIndex := helpers.ColumnIndex(header, columns.Phone)
	if phoneIndex < 0 {
		return nil, fmt.Errorf("column '%s' not found in csv header %v", columns.Phone, header)
	}
	return &CSVCustomerReader{
		body:              body,
		reader:            reader,
		phoneIndex:        phoneIndex,
		unsubscribedIndex: helpers.ColumnIndex(header, columns.Unsubscribed),
	}, nil
}

func (csvReader *CSVCustomerReader) Read() (core.CustomerRecord, error) {
	row, err := csvReader.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return core.CustomerRecord{}, io.EOF
		}
		return core.CustomerRecord{}, fmt.Errorf("error reading csv row: %v", err)
	}
	record := core.CustomerRecord{Phone: strings.TrimSpace(field(row, csvReader.phoneIndex))}
	if csvReader.unsubscribedIndex >= 0 {
		record.Unsubscribed = helpers.IsUnsubscribed(field(row, csvReader.unsubscribedIndex))
	}
	return record, nil
}

func (csvReader *CSVCustomerReader) Close() error {
	return csvReader.body.Close()
}

func field(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}

// CSVFileSource opens a customer list from the local filesystem.
type CSVFileSource struct {
	Path    string
	Columns CustomerColumns
}

func (source *CSVFileSource) OpenCustomers(ctx context.Context) (core.CustomerReader, error) {
	file, err := os.Open(source.Path)
	if err != nil {
		return nil, fmt.Errorf("error on opening customers file path='%s': %v", source.Path, err)
	}
	reader, err := NewCSVCustomerReader(file, source.Columns)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("error on NewCSVCustomerReader path='%s': %v", source.Path, err)
	}
	return reader, nil
}
