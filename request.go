package tracks

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/schema"
)

var ErrNotStructPointer = errors.New("v must be a pointer to a struct")

// ParseRequest decodes the request body into v. JSON bodies are decoded as
// JSON, everything else is treated as a form.
func ParseRequest(r *http.Request, v any) error {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			return fmt.Errorf("failed to decode json body: %w", err)
		}
		return nil
	}

	if err := r.ParseForm(); err != nil {
		return err
	}
	return UnmarshalForm(r.PostForm, v)
}

// Parse is ParseRequest for a freshly allocated T.
func Parse[T any](r *http.Request) (T, error) {
	var v T
	err := ParseRequest(r, &v)
	return v, err
}

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.SetAliasTag("form")
	dec.IgnoreUnknownKeys(true)
	dec.RegisterConverter(uuid.UUID{}, func(s string) reflect.Value {
		id, err := uuid.Parse(s)
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(id)
	})

	return dec
}

// UnmarshalForm populates a struct from form values using 'form' tags.
// Untagged fields match on their Go name; tag a field "-" to skip it.
func UnmarshalForm(values map[string][]string, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}

	err := formDecoder.Decode(v, values)
	if err == nil {
		return nil
	}

	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return err
	}

	keys := make([]string, 0, len(multi))
	for key := range multi {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	errs := make([]error, 0, len(keys))
	for _, key := range keys {
		var conv schema.ConversionError
		if errors.As(multi[key], &conv) && conv.Err != nil {
			errs = append(errs, fmt.Errorf("failed to parse %s: %w", key, conv.Err))
			continue
		}
		errs = append(errs, fmt.Errorf("failed to parse %s: %w", key, multi[key]))
	}
	return errors.Join(errs...)
}
