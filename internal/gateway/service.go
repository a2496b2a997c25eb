// internal/gateway/service.go

// Package gateway exposes the voice navigation pipeline over HTTP and
// websocket, running the same worker handlers in-process that the
// worker manager registers against Zeebe.
package gateway

import (
	"context"
	"encoding/json"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"navpilot-workers/internal/common/logger"
	"navpilot-workers/internal/intent"

	en "navpilot-workers/internal/workers/voice-navigation/execute-navigation"
	pni "navpilot-workers/internal/workers/voice-navigation/parse-navigation-intent"
	rp "navpilot-workers/internal/workers/voice-navigation/resolve-place"
	snl "navpilot-workers/internal/workers/voice-navigation/send-navigation-link"
	tvc "navpilot-workers/internal/workers/voice-navigation/transcribe-voice-command"
)

type Service struct {
	transcriber *tvc.Handler
	parser      *pni.Handler
	resolver    *rp.Handler
	navigator   *en.Handler
	notifier    *snl.Handler

	sessions *redis.Client
	es       *elasticsearch.Client
	logger   logger.Logger
}

// Dependencies carries everything the service needs. Notifier,
// sessions, and es may be nil; the matching pipeline stages are then
// skipped or degrade to pass-through.
type Dependencies struct {
	Transcriber *tvc.Handler
	Parser      *pni.Handler
	Resolver    *rp.Handler
	Navigator   *en.Handler
	Notifier    *snl.Handler

	Sessions *redis.Client
	ES       *elasticsearch.Client
	Logger   logger.Logger
}

func NewService(deps Dependencies) *Service {
	return &Service{
		transcriber: deps.Transcriber,
		parser:      deps.Parser,
		resolver:    deps.Resolver,
		navigator:   deps.Navigator,
		notifier:    deps.Notifier,
		sessions:    deps.Sessions,
		es:          deps.ES,
		logger:      deps.Logger.WithFields(map[string]interface{}{"component": "gateway"}),
	}
}

// Navigate runs the full pipeline for one command. Unrecognized and
// invalid commands come back as a non-success response, not an error;
// an error return means a pipeline stage itself failed.
func (s *Service) Navigate(ctx context.Context, req *NavigateRequest) (*NavigateResponse, error) {
	requestID := uuid.New().String()
	log := s.logger.WithFields(map[string]interface{}{"requestId": requestID})

	text := req.Text
	if req.Audio != "" && s.transcriber != nil {
		transcribed, err := s.transcriber.Execute(ctx, &tvc.Input{
			Audio:        req.Audio,
			FallbackText: req.Text,
			SessionID:    req.SessionID,
		})
		if err != nil {
			return nil, err
		}
		text = transcribed.Command
	}

	parsed, err := s.parser.Execute(ctx, &pni.Input{
		Command:   text,
		SessionID: req.SessionID,
	})
	if err != nil {
		return nil, err
	}

	resp := &NavigateResponse{
		RequestID:  requestID,
		Intent:     parsed.Intent,
		Validation: parsed.Validation,
	}

	if parsed.Intent.Type == intent.TypeUnknown {
		resp.Message = parsed.Intent.ParsedIntent
		return resp, nil
	}
	if !parsed.Validation.Valid {
		resp.Message = parsed.Validation.Reason
		return resp, nil
	}
	if !parsed.Intent.HasEnd() {
		// start_navigation passes validation but carries no
		// destination, so there is nothing to route yet.
		resp.Message = "缺少目的地位置"
		return resp, nil
	}

	if s.resolver != nil {
		resolved, err := s.resolver.Execute(ctx, &rp.Input{Intent: parsed.Intent})
		if err != nil {
			// Place resolution is an enrichment stage; a broken index
			// does not block navigation.
			log.Warn("place resolution failed, continuing unresolved", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			resp.Intent = resolved.Intent
		}
	}

	nav, err := s.navigator.Execute(ctx, &en.Input{
		Intent:   resp.Intent,
		Provider: req.Provider,
		Mode:     req.Mode,
	})
	if err != nil {
		return nil, err
	}

	resp.Success = nav.Success
	resp.NavigationURL = nav.NavigationURL
	resp.Provider = nav.Provider
	resp.ProviderName = nav.ProviderName
	resp.Message = nav.Message

	if s.notifier != nil && (req.Phone != "" || req.Email != "") {
		if _, err := s.notifier.Execute(ctx, &snl.Input{
			Phone:         req.Phone,
			Email:         req.Email,
			NavigationURL: nav.NavigationURL,
			Message:       nav.Message,
			ProviderName:  nav.ProviderName,
			SessionID:     req.SessionID,
		}); err != nil {
			log.Warn("navigation link delivery failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	log.Info("navigation request completed", map[string]interface{}{
		"intentType": string(resp.Intent.Type),
		"provider":   resp.Provider,
	})

	return resp, nil
}

// Status reports component health the way the original status surface
// did: one line per collaborator.
func (s *Service) Status(ctx context.Context) *StatusResponse {
	components := map[string]string{}
	healthy := true

	if s.sessions != nil {
		if err := s.sessions.Ping(ctx).Err(); err != nil {
			components["redis"] = "unreachable: " + err.Error()
			healthy = false
		} else {
			components["redis"] = "ok"
		}
	} else {
		components["redis"] = "not configured"
	}

	if s.es != nil {
		res, err := s.es.Ping(s.es.Ping.WithContext(ctx))
		if err != nil {
			components["elasticsearch"] = "unreachable: " + err.Error()
			healthy = false
		} else {
			res.Body.Close()
			if res.IsError() {
				components["elasticsearch"] = "error: " + res.Status()
				healthy = false
			} else {
				components["elasticsearch"] = "ok"
			}
		}
	} else {
		components["elasticsearch"] = "not configured"
	}

	if s.transcriber != nil {
		components["speech"] = "ok"
	} else {
		components["speech"] = "not configured"
	}
	components["maps"] = "ok"

	status := "ok"
	if !healthy {
		status = "degraded"
	}
	return &StatusResponse{Status: status, Components: components}
}

// SessionIntent returns the last parsed intent stored for a session.
func (s *Service) SessionIntent(ctx context.Context, sessionID string) (*intent.Intent, error) {
	if s.sessions == nil || sessionID == "" {
		return nil, nil
	}
	data, err := s.sessions.Get(ctx, "session:intent:"+sessionID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var in intent.Intent
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	return &in, nil
}
