package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrorDump is the loggable view of an error chain, with the driver
// diagnostics of whichever store produced it.
type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	PGCode       string `json:"pg_code,omitempty"`
	PGConstraint string `json:"pg_constraint,omitempty"`
	PGTable      string `json:"pg_table,omitempty"`
	PGColumn     string `json:"pg_column,omitempty"`
	PGDetail     string `json:"pg_detail,omitempty"`
	PGMessage    string `json:"pg_message,omitempty"`

	MongoCode         int      `json:"mongo_code,omitempty"`
	MongoMessage      string   `json:"mongo_message,omitempty"`
	MongoLabels       []string `json:"mongo_labels,omitempty"`
	MongoDuplicateKey bool     `json:"mongo_duplicate_key,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		d.PGCode = pgxErr.Code
		d.PGConstraint = pgxErr.ConstraintName
		d.PGTable = pgxErr.TableName
		d.PGColumn = pgxErr.ColumnName
		d.PGDetail = pgxErr.Detail
		d.PGMessage = pgxErr.Message
		return d
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		d.PGCode = string(pqErr.Code)
		d.PGConstraint = pqErr.Constraint
		d.PGTable = pqErr.Table
		d.PGColumn = pqErr.Column
		d.PGDetail = pqErr.Detail
		d.PGMessage = pqErr.Message
		return d
	}

	dumpMongo(err, &d)
	return d
}

// dumpMongo fills the first server-side code it finds: a write error, then a
// write concern error, then a command error.
func dumpMongo(err error, d *ErrorDump) {
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		d.MongoLabels = writeErr.Labels
		switch {
		case len(writeErr.WriteErrors) > 0:
			d.MongoCode = writeErr.WriteErrors[0].Code
			d.MongoMessage = writeErr.WriteErrors[0].Message
		case writeErr.WriteConcernError != nil:
			d.MongoCode = writeErr.WriteConcernError.Code
			d.MongoMessage = writeErr.WriteConcernError.Message
		}
	}

	var bulkErr mongo.BulkWriteException
	if d.MongoCode == 0 && errors.As(err, &bulkErr) {
		d.MongoLabels = bulkErr.Labels
		if len(bulkErr.WriteErrors) > 0 {
			d.MongoCode = bulkErr.WriteErrors[0].Code
			d.MongoMessage = bulkErr.WriteErrors[0].Message
		}
	}

	var cmdErr mongo.CommandError
	if d.MongoCode == 0 && errors.As(err, &cmdErr) {
		d.MongoCode = int(cmdErr.Code)
		d.MongoMessage = cmdErr.Message
		d.MongoLabels = cmdErr.Labels
	}

	d.MongoDuplicateKey = mongo.IsDuplicateKeyError(err)
}
