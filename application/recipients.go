package application

import "github.com/rayafarhadi/text-marketing-app/core"

type subscribedReader struct {
	source core.CustomerReader
}

// FilterRecipients yields only the records of subscribed customers, in source order.
func FilterRecipients(reader core.CustomerReader) core.CustomerReader {
	return &subscribedReader{source: reader}
}

func (reader *subscribedReader) Read() (core.CustomerRecord, error) {
	for {
		record, err := reader.source.Read()
		if err != nil {
			return core.CustomerRecord{}, err
		}
		if !record.Unsubscribed {
			return record, nil
		}
	}
}

func (reader *subscribedReader) Close() error {
	return reader.source.Close()
}
