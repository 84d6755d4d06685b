/*
 * Copyright (c) 2020 Siemens AG
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy of
 * this software and associated documentation files (the "Software"), to deal in
 * the Software without restriction, including without limitation the rights to
 * use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
 * the Software, and to permit persons to whom the Software is furnished to do so,
 * subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
 * FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
 * COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
 * IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 * CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 *
 * Author(s): Jonas Plum
 */

package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"crawshaw.io/sqlite"
	"github.com/fatih/structs"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/qri-io/jsonschema"
	"github.com/tidwall/gjson"
)

const storeApplicationID = 1634889588

// Every exported record must at least be a JSON object.
const recordSchemaJSON = `{
	"$schema": "https://json-schema.org/draft/2019-09/schema#",
	"title": "record",
	"type": "object"
}`

var recordSchema = &jsonschema.Schema{}

func init() {
	if err := json.Unmarshal([]byte(recordSchemaJSON), recordSchema); err != nil {
		panic(err)
	}
}

// StoreSink writes exported records into a local sqlite database, one row
// per record line.
type StoreSink struct {
	conn *sqlite.Conn
}

// NewStoreSink opens or creates the record store at the given path.
func NewStoreSink(path string) (*StoreSink, error) {
	if path == "" {
		return nil, errors.New("record store requires a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, err
	}

	conn, err := sqlite.OpenConn(path, 0)
	if err != nil {
		return nil, errors.Wrap(err, "could not open record store")
	}

	sink := &StoreSink{conn: conn}
	if err := sink.setup(); err != nil {
		conn.Close()
		return nil, err
	}
	return sink, nil
}

func (s *StoreSink) setup() error {
	if err := s.exec("PRAGMA application_id = " + fmt.Sprint(storeApplicationID)); err != nil {
		return err
	}
	return s.exec("CREATE TABLE IF NOT EXISTS `records` " +
		"(id TEXT PRIMARY KEY, type TEXT, tool TEXT, input TEXT, case_id TEXT, json TEXT, insert_time TEXT)")
}

// Send validates and inserts every record line, tagged with its origin.
func (s *StoreSink) Send(records []byte, meta Meta) error {
	tags := structs.Map(meta)
	insertTime := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")

	for _, line := range bytes.Split(records, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		valErrs, err := recordSchema.ValidateBytes(context.Background(), line)
		if err != nil {
			return errors.Wrap(err, "record validation failed")
		}
		if len(valErrs) > 0 {
			var messages []string
			for _, valErr := range valErrs {
				messages = append(messages, fmt.Sprintf("%s", valErr))
			}
			return fmt.Errorf("record could not be validated [%s]", strings.Join(messages, ","))
		}

		recordType := gjson.GetBytes(line, "_type").String()
		if recordType == "" {
			recordType = gjson.GetBytes(line, "type").String()
		}
		if recordType == "" {
			recordType = "record"
		}

		query := "INSERT INTO `records` (id, type, tool, input, case_id, json, insert_time) " +
			"VALUES ($id, $type, $tool, $input, $case, $json, $time)"
		stmt, err := s.conn.Prepare(query)
		if err != nil {
			return errors.Wrap(err, fmt.Sprintf("could not prepare statement %s", query))
		}
		stmt.SetText("$id", recordType+"--"+uuid.New().String())
		stmt.SetText("$type", recordType)
		stmt.SetText("$tool", textTag(tags, "tool"))
		stmt.SetText("$input", textTag(tags, "input"))
		stmt.SetText("$case", textTag(tags, "case_id"))
		stmt.SetText("$json", string(line))
		stmt.SetText("$time", insertTime)
		if _, err := stmt.Step(); err != nil {
			return errors.Wrap(err, "could not insert record")
		}
		if err := stmt.Finalize(); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *StoreSink) Close() error {
	return s.conn.Close()
}

// Count returns the number of stored records.
func (s *StoreSink) Count() (int64, error) {
	stmt, err := s.conn.Prepare("SELECT COUNT(*) AS count FROM `records`")
	if err != nil {
		return 0, err
	}
	if _, err := stmt.Step(); err != nil {
		return 0, err
	}
	count := stmt.GetInt64("count")
	return count, stmt.Finalize()
}

func (s *StoreSink) exec(query string) error {
	stmt, err := s.conn.Prepare(query)
	if err != nil {
		return err
	}
	if _, err := stmt.Step(); err != nil {
		return err
	}
	return stmt.Finalize()
}

func textTag(tags map[string]interface{}, key string) string {
	if value, ok := tags[key].(string); ok {
		return value
	}
	return ""
}
