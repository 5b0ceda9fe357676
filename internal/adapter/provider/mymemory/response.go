package mymemory

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// apiResponse is the subset of the MyMemory /get response the client reads.
type apiResponse struct {
	ResponseData    apiResponseData `json:"responseData"`
	QuotaFinished   bool            `json:"quotaFinished"`
	ResponseStatus  flexInt         `json:"responseStatus"`
	ResponseDetails string          `json:"responseDetails"`
}

type apiResponseData struct {
	TranslatedText string  `json:"translatedText"`
	Match          float64 `json:"match"`
}

// flexInt accepts both 200 and "200"; the API is inconsistent about it.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		var num json.Number
		if jerr := json.Unmarshal(data, &num); jerr != nil {
			return err
		}
		v, ferr := num.Float64()
		if ferr != nil {
			return err
		}
		n = int(v)
	}
	*f = flexInt(n)
	return nil
}
