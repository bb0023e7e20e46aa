package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"turismocombita/internal/content"
	"turismocombita/internal/media"
)

const (
	maxBodyBytes     = 32 << 20
	maxMultipartHeap = 16 << 20
)

// readPayload flattens a JSON, urlencoded or multipart body into
// content.Fields. With a policy, the multipart file under policy.Field is
// validated and stored; a missing file is not an error.
func (s *Server) readPayload(w http.ResponseWriter, r *http.Request, policy *media.Policy) (content.Fields, media.Outcome, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		return s.readMultipart(r, policy)
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, media.Outcome{}, badRequest("Solicitud inválida")
		}
		return firstValues(r.PostForm), media.Outcome{}, nil
	case "application/json", "":
		f, err := jsonFields(r.Body)
		if err != nil {
			return nil, media.Outcome{}, badRequest("JSON inválido")
		}
		return f, media.Outcome{}, nil
	default:
		return nil, media.Outcome{}, badRequest("Tipo de contenido no soportado")
	}
}

func (s *Server) readMultipart(r *http.Request, policy *media.Policy) (content.Fields, media.Outcome, error) {
	if err := r.ParseMultipartForm(maxMultipartHeap); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, media.Outcome{}, &apiError{status: http.StatusRequestEntityTooLarge, message: "La solicitud es demasiado grande"}
		}
		return nil, media.Outcome{}, badRequest("Solicitud inválida")
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Printf("[api] multipart cleanup: %v", err)
		}
	}()

	f := firstValues(r.MultipartForm.Value)
	if policy == nil {
		return f, media.Outcome{}, nil
	}
	headers := r.MultipartForm.File[policy.Field]
	if len(headers) == 0 {
		return f, media.Outcome{}, nil
	}
	file, err := headers[0].Open()
	if err != nil {
		return nil, media.Outcome{}, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	out, err := s.uploads.Accept(r.Context(), *policy, headers[0].Filename, file)
	if err != nil {
		return nil, media.Outcome{}, err
	}
	return f, out, nil
}

func firstValues(values map[string][]string) content.Fields {
	f := make(content.Fields, len(values))
	for k, v := range values {
		if len(v) > 0 {
			f[k] = v[0]
		}
	}
	return f
}

// jsonFields turns a JSON object into Fields: strings as-is, numbers and
// booleans in their literal form, arrays comma-joined, null as absent. One
// level of nested object is flattened (so redes_sociales.facebook arrives
// as facebook) without overriding top-level keys.
func jsonFields(body io.Reader) (content.Fields, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return content.Fields{}, nil
		}
		return nil, err
	}

	f := content.Fields{}
	for k, v := range raw {
		if s, ok := scalarString(v); ok {
			f[k] = s
		}
	}
	for _, v := range raw {
		nested, ok := v.(map[string]any)
		if !ok {
			continue
		}
		for k, nv := range nested {
			if f.Has(k) {
				continue
			}
			if s, ok := scalarString(nv); ok {
				f[k] = s
			}
		}
	}
	return f, nil
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case json.Number:
		// Exponent forms such as 1e3 are spelled out so field parsers see 1000.
		if n, err := t.Int64(); err == nil {
			return strconv.FormatInt(n, 10), true
		}
		if f, err := t.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64), true
		}
		return t.String(), true
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := scalarString(item); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ","), true
	}
	return "", false
}

// discard removes a file stored for a request that then failed.
func (s *Server) discard(r *http.Request, out media.Outcome) {
	if out.Stored() {
		s.uploads.Remove(r.Context(), out.Path)
	}
}

type uploadRejection struct {
	Estado string `json:"estado"`
	Motivo string `json:"motivo"`
}

// mutationBody is the {success, <key>: record} reply, plus an archivo note
// when the upload was refused.
func mutationBody(key string, rec any, out media.Outcome) map[string]any {
	body := map[string]any{"success": true, key: rec}
	if out.Rejected() {
		body["archivo"] = uploadRejection{Estado: "rechazado", Motivo: out.Reason}
	}
	return body
}
