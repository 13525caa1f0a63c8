package acquire

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var (
	errInvalidJSON   = errors.New("response body is not valid JSON")
	errNotAnEnvelope = errors.New("response body is not a JSON object")
)

// envelope is the common api-sports response shape
// {"errors": [...] | {...}, "response": [...]}
type envelope struct {
	errors   gjson.Result
	response gjson.Result
}

func parseEnvelope(body []byte) (envelope, error) {
	if !gjson.ValidBytes(body) {
		return envelope{}, errInvalidJSON
	}
	res := gjson.ParseBytes(body)
	if !res.IsObject() {
		return envelope{}, errNotAnEnvelope
	}
	return envelope{
		errors:   res.Get("errors"),
		response: res.Get("response"),
	}, nil
}

// errorMessages flattens the errors member. The provider sends an array or,
// more often, an object keyed by the failing check ({"requests": "..."}).
func (e envelope) errorMessages() []string {
	var msgs []string
	switch {
	case e.errors.IsArray():
		for _, item := range e.errors.Array() {
			msgs = append(msgs, resultText(item))
		}
	case e.errors.IsObject():
		e.errors.ForEach(func(key, value gjson.Result) bool {
			msgs = append(msgs, fmt.Sprintf("%s: %s", key.String(), resultText(value)))
			return true
		})
	}
	return msgs
}

func resultText(r gjson.Result) string {
	if r.Type == gjson.String {
		return r.String()
	}
	return r.Raw
}

// tagRecords copies every object of the response array and sets its sport
// member. Fields keep their original order.
func tagRecords(response gjson.Result, sport string, logger log.FieldLogger) []Record {
	if !response.IsArray() {
		return []Record{}
	}
	items := response.Array()
	records := make([]Record, 0, len(items))
	for i, item := range items {
		if !item.IsObject() {
			logger.Debugf("skipping response item %d: not an object", i)
			continue
		}
		tagged, err := sjson.SetBytes([]byte(item.Raw), "sport", sport)
		if err != nil {
			logger.Debugf("skipping response item %d: %v", i, err)
			continue
		}
		records = append(records, Record(tagged))
	}
	return records
}
