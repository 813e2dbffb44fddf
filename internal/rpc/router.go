package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Kind separates read-only procedures from the ones that write.
type Kind int

const (
	KindQuery Kind = iota
	KindMutation
)

func (k Kind) String() string {
	if k == KindMutation {
		return "mutation"
	}
	return "query"
}

type handlerFunc func(ctx context.Context, input json.RawMessage) (any, error)

type procedure struct {
	kind Kind
	call handlerFunc
}

type Router struct {
	procs map[string]procedure
	log   *zap.Logger
}

func NewRouter(log *zap.Logger) *Router {
	return &Router{
		procs: make(map[string]procedure),
		log:   log.Named("rpc"),
	}
}

// Query registers a read-only procedure.
func Query[I, O any](r *Router, name string, fn func(context.Context, I) (O, error)) {
	r.register(name, KindQuery, wrap(fn))
}

// Mutation registers a procedure that writes.
func Mutation[I, O any](r *Router, name string, fn func(context.Context, I) (O, error)) {
	r.register(name, KindMutation, wrap(fn))
}

func (r *Router) register(name string, kind Kind, call handlerFunc) {
	if _, dup := r.procs[name]; dup {
		panic(fmt.Sprintf("rpc: procedure %q registered twice", name))
	}
	r.procs[name] = procedure{kind: kind, call: call}
}

// wrap hides the input and output types of fn behind JSON.
func wrap[I, O any](fn func(context.Context, I) (O, error)) handlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		in, err := decodeInput[I](raw)
		if err != nil {
			return nil, err
		}
		out, err := fn(ctx, in)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
}

// Procedures lists the registered names in order.
func (r *Router) Procedures() []string {
	names := make([]string, 0, len(r.procs))
	for name := range r.procs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Router) Handler() http.Handler {
	mux := chi.NewRouter()
	mux.Get("/{procedure}", r.serve)
	mux.Post("/{procedure}", r.serve)
	mux.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, &Error{Code: CodeMethodNotSupported, Message: "Use GET or POST"})
	})
	mux.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, &Error{Code: CodeNotFound, Message: "No procedure at " + req.URL.Path})
	})
	return mux
}

func (r *Router) serve(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "procedure")
	proc, ok := r.procs[name]
	if !ok {
		writeError(w, &Error{Code: CodeNotFound, Message: fmt.Sprintf("No procedure named %q", name)})
		return
	}
	if proc.kind == KindMutation && req.Method != http.MethodPost {
		writeError(w, &Error{Code: CodeMethodNotSupported, Message: fmt.Sprintf("%s is a mutation and requires POST", name)})
		return
	}

	input, rpcErr := readInput(w, req)
	if rpcErr != nil {
		writeError(w, rpcErr)
		return
	}

	out, err := proc.call(req.Context(), input)
	if err != nil {
		rpcErr, expose := toError(err)
		if !expose {
			r.log.Debug("procedure failed", zap.String("procedure", name), zap.Error(err))
		}
		writeError(w, rpcErr)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Result: result{Data: out}})
}

const maxInputBytes = 1 << 20

func readInput(w http.ResponseWriter, req *http.Request) (json.RawMessage, *Error) {
	if req.Method == http.MethodGet {
		return json.RawMessage(req.URL.Query().Get("input")), nil
	}
	var raw json.RawMessage
	body := http.MaxBytesReader(w, req.Body, maxInputBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, &Error{Code: CodeParseError, Message: "Request body is not valid JSON"}
	}
	return raw, nil
}

// decodeInput decodes raw into I. Empty input and null decode to the zero value.
func decodeInput[I any](raw json.RawMessage) (I, error) {
	var in I
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return in, nil
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return in, &Error{Code: CodeParseError, Message: "Input does not match the procedure schema"}
	}
	return in, nil
}

type result struct {
	Data any `json:"data"`
}

type successResponse struct {
	Result result `json:"result"`
}

type errorResponse struct {
	Error *Error `json:"error"`
}

func writeError(w http.ResponseWriter, e *Error) {
	writeJSON(w, e.Status(), errorResponse{Error: e})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
