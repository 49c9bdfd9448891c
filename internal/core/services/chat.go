package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// NoDocumentsReply answers questions asked before anything was uploaded.
const NoDocumentsReply = `No documents have been uploaded yet.

To get started:
1. Upload a file or paste some text.
2. Once the upload finishes, ask a question about its content!

Supported file formats: PDF, TXT, DOCX`

// ChatService answers chat messages from canned replies or corpus matches.
type ChatService struct {
	search driving.SearchService
	topK   int
	now    func() time.Time
	rules  []replyRule
}

// replyRule is a canned reply triggered by any of its keywords.
// ASCII keywords match whole words; other keywords match anywhere.
type replyRule struct {
	keywords []string
	reply    func(s *ChatService) string
}

// NewChatService creates a new chat service.
func NewChatService(search driving.SearchService, topK int) *ChatService {
	if topK < 1 {
		topK = domain.DefaultTopK
	}
	return &ChatService{
		search: search,
		topK:   topK,
		now:    time.Now,
		rules:  defaultRules(),
	}
}

func defaultRules() []replyRule {
	return []replyRule{
		{
			keywords: []string{"안녕", "hello", "hi", "반가워"},
			reply: func(*ChatService) string {
				return "Hello! I'm a document chatbot. Upload a document and you can ask me about its content!"
			},
		},
		{
			keywords: []string{"누구", "이름", "name", "소개"},
			reply: func(*ChatService) string {
				return "I'm a retrieval chatbot that answers questions from your documents. " +
					"Upload some and I'll find the passages that match what you ask."
			},
		},
		{
			keywords: []string{"기능", "뭐할", "뭐해", "도움", "help"},
			reply: func(s *ChatService) string {
				return fmt.Sprintf(`Here is what I can do:
- Upload documents (text, PDF, DOCX)
- Search the uploaded documents
- Answer questions from their content

There are currently %d chunks indexed.`, s.search.CorpusSize())
			},
		},
		{
			keywords: []string{"대화", "채팅", "얘기"},
			reply: func(*ChatService) string {
				return "Sure, I can chat a little! My real strength is answering questions " +
					"from the documents you upload. Why not upload one?"
			},
		},
		{
			keywords: []string{"orm"},
			reply: func(*ChatService) string {
				return `ORM (Object-Relational Mapping) maps objects in code onto tables in a relational database.

What an ORM gives you:
- Database access through ordinary objects
- No hand-written SQL for everyday queries
- Independence from a particular database
- Protection against SQL injection

Upload a related document if you need more detail about ORMs!`
			},
		},
		{
			keywords: []string{"시간", "time", "몇시"},
			reply: func(s *ChatService) string {
				return "The current time is " + s.now().Format("2006-01-02 15:04") + "."
			},
		},
		{
			keywords: []string{"고마워", "감사", "thank", "thanks"},
			reply: func(*ChatService) string {
				return "You're welcome! Ask me anytime."
			},
		},
		// "안좋아" contains "좋아", so the negative rule goes first.
		{
			keywords: []string{"나빠", "안좋아", "bad"},
			reply: func(*ChatService) string {
				return "I see. Is there anything else I can help with?"
			},
		},
		{
			keywords: []string{"좋아", "좋다", "good"},
			reply: func(*ChatService) string {
				return "Great! Ask me anytime if anything else comes up."
			},
		},
		{
			keywords: []string{"재미있어", "흥미로워", "interesting"},
			reply: func(*ChatService) string {
				return "I'm glad you think so!"
			},
		},
		{
			keywords: []string{"어려워", "복잡해", "difficult"},
			reply: func(*ChatService) string {
				return "If it's hard to follow I can explain in more detail. Which part is giving you trouble?"
			},
		},
	}
}

// Reply answers message. Canned replies take precedence over corpus search.
func (s *ChatService) Reply(ctx context.Context, message string) domain.Response {
	message = strings.TrimSpace(message)
	if message == "" {
		return s.respond(domain.Failure(fmt.Errorf("%w: please enter a message", domain.ErrInvalidInput)))
	}

	if reply, ok := s.generalReply(message); ok {
		return s.respond(domain.Success(reply))
	}

	if s.search.CorpusSize() == 0 {
		return s.respond(domain.Success(NoDocumentsReply))
	}

	results, err := s.search.Search(ctx, message, s.topK)
	if err != nil {
		logger.Error("chat search", "error", err)
		return s.respond(domain.Failure(fmt.Errorf("search failed: %w", err)))
	}
	if len(results) == 0 {
		return s.respond(domain.Success(fmt.Sprintf(
			"I couldn't find anything related to '%s' in the uploaded documents. "+
				"Try a different question or upload a related document!", message)))
	}

	resp := domain.Success(FormatResults(results))
	resp.Results = results
	return s.respond(resp)
}

func (s *ChatService) respond(resp domain.Response) domain.Response {
	resp.DocumentCount = s.search.CorpusSize()
	return resp
}

// generalReply returns the first canned reply whose keyword occurs in message.
func (s *ChatService) generalReply(message string) (string, bool) {
	lower := strings.ToLower(message)
	words := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words[w] = struct{}{}
	}

	for _, rule := range s.rules {
		for _, kw := range rule.keywords {
			if matchKeyword(lower, words, kw) {
				return rule.reply(s), true
			}
		}
	}
	return "", false
}

func matchKeyword(lower string, words map[string]struct{}, kw string) bool {
	if isASCII(kw) {
		_, ok := words[kw]
		return ok
	}
	return strings.Contains(lower, kw)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}
