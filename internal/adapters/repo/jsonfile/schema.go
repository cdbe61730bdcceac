package jsonfile

import (
	"fmt"

	"github.com/bnema/coffeetable/internal/domain"
)

// recordSchema is one persisted round: a one-element list wrapping the
// arrangement, as in [[["Ann","Bob"],["Cid"]]].
type recordSchema [][][]string

type fileSchema []recordSchema

func toSchema(history domain.History) fileSchema {
	file := make(fileSchema, 0, len(history))
	for _, arrangement := range history {
		tables := make([][]string, 0, len(arrangement))
		for _, table := range arrangement {
			names := make([]string, 0, len(table))
			for _, person := range table {
				names = append(names, string(person))
			}
			tables = append(tables, names)
		}
		file = append(file, recordSchema{tables})
	}
	return file
}

func fromSchema(file fileSchema) (domain.History, error) {
	history := make(domain.History, 0, len(file))
	for i, record := range file {
		if len(record) != 1 {
			return nil, fmt.Errorf("%w: record %d wraps %d arrangements, want 1", domain.ErrMalformedHistory, i+1, len(record))
		}

		arrangement := make(domain.Arrangement, 0, len(record[0]))
		for _, names := range record[0] {
			table := make(domain.Table, 0, len(names))
			for _, name := range names {
				table = append(table, domain.Participant(name))
			}
			arrangement = append(arrangement, table)
		}
		history = append(history, arrangement)
	}
	return history, nil
}
