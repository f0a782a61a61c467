package handlers

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/satsangkankpul/donation-services/internal/donationsvc/service"
)

const maxBodyBytes = 1 << 20

type formValues map[string]string

// parseForm reads a urlencoded or JSON body into flat string values. JSON
// numbers keep their literal text so amounts are not rounded through float64.
func parseForm(w http.ResponseWriter, r *http.Request) (formValues, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		raw := map[string]interface{}{}
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode json body: %w", err)
		}

		values := formValues{}
		for k, v := range raw {
			switch v := v.(type) {
			case string:
				values[k] = v
			case json.Number:
				values[k] = v.String()
			case bool:
				values[k] = fmt.Sprint(v)
			}
		}
		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}
	values := formValues{}
	for k := range r.PostForm {
		values[k] = r.PostForm.Get(k)
	}
	return values, nil
}

func (v formValues) donorForm() service.DonorForm {
	return service.DonorForm{
		FullName:  v["fullName"],
		Address:   v["address"],
		Mobile:    v["mobile"],
		Email:     v["email"],
		AmountINR: v["amountINR"],
		Comment:   v["comment"],
	}
}
