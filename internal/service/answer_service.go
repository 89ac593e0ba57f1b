package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/personapath/personapath/internal/ai"
	"github.com/personapath/personapath/internal/model"
	appErr "github.com/personapath/personapath/internal/pkg/errors"
	"github.com/personapath/personapath/internal/session"
)

const answerSystemPrompt = `You are a career advisor for employees exploring internal career paths.
Answer the question using ONLY the provided context snippets.
- Cite snippets by their [source:...] tag when you use them.
- If the context does not contain the answer, say so plainly.
- Keep the answer concise and practical.`

const lowConfidenceNotice = "I couldn't find role or profile material matching your question, so the following is general guidance only."

// LowConfidenceNotice is the degraded-mode preamble attached to
// answers produced without grounding context.
func LowConfidenceNotice() string {
	return lowConfidenceNotice
}

type AnswerService struct {
	generator ai.IGenerator
	retrieval *RetrievalService
	sessions  session.Store
}

func NewAnswerService(generator ai.IGenerator, retrieval *RetrievalService, sessions session.Store) *AnswerService {
	return &AnswerService{
		generator: generator,
		retrieval: retrieval,
		sessions:  sessions,
	}
}

// Answer runs the query-time RAG path for one user question. When
// retrieval comes back empty the reply is explicitly flagged as
// ungrounded and carries the low-confidence notice; the engine never
// dresses up an answer without sources as a grounded one. Provider
// failures surface as ErrGenerationUnavailable after bounded retries
// and leave the session history untouched.
func (s *AnswerService) Answer(ctx context.Context, userID, question string) (*model.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, appErr.ErrInvalid
	}
	sess := s.sessions.Ensure(userID)

	results, err := s.retrieval.Retrieve(ctx, question, s.retrieval.DefaultTopK(), s.retrieval.DefaultMinScore())
	if err != nil {
		return nil, err
	}

	prompt := buildPrompt(sess.History(), results, question)
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		logutil.GetLogger(ctx).Error("answer generation failed",
			zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	answer := &model.Answer{
		Text:     text,
		Grounded: len(results) > 0,
	}
	if answer.Grounded {
		seen := make(map[string]bool, len(results))
		for _, r := range results {
			if !seen[r.DocumentID] {
				seen[r.DocumentID] = true
				answer.Sources = append(answer.Sources, r.DocumentID)
			}
		}
	} else {
		answer.Text = lowConfidenceNotice + "\n\n" + text
	}

	sess.Append(model.TurnRoleUser, question)
	sess.Append(model.TurnRoleAssistant, answer.Text)
	return answer, nil
}

func buildPrompt(history []model.ConversationTurn, results []model.RetrievalResult, question string) string {
	var sb strings.Builder
	sb.WriteString(answerSystemPrompt)
	sb.WriteString("\n\n")

	if len(results) > 0 {
		sb.WriteString("CONTEXT:\n")
		for _, r := range results {
			fmt.Fprintf(&sb, "[source:%s] %s\n\n", r.DocumentID, r.Text)
		}
	} else {
		sb.WriteString("CONTEXT: none. State clearly that no matching material was found before giving general advice.\n\n")
	}

	if len(history) > 0 {
		sb.WriteString("CONVERSATION SO FAR:\n")
		for _, turn := range history {
			label := "User"
			if turn.Role == model.TurnRoleAssistant {
				label = "Assistant"
			}
			fmt.Fprintf(&sb, "%s: %s\n", label, turn.Text)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "QUESTION:\n%s", question)
	return sb.String()
}
