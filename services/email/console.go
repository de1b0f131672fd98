package emailsvc

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/lefika/ripota/core"
)

// SentMessages records messages sent by the console service, for tests.
var (
	SentMessages = make([]core.EmailMessage, 0)
	mu           sync.Mutex
)

type consoleService struct {
	subjPrefix    string
	disableOutput bool
}

var _ core.EmailService = (*consoleService)(nil)

// NewConsoleService returns an EmailService that writes messages to stdout.
// Used in DEV.
func NewConsoleService(conf *core.Config) core.EmailService {
	return &consoleService{subjPrefix: "[" + conf.AppName + "] "}
}

// NewConsoleServiceMock returns a silent EmailService that only records
// messages. Used in tests.
func NewConsoleServiceMock(conf *core.Config) core.EmailService {
	return &consoleService{
		subjPrefix:    "[" + conf.AppName + "] ",
		disableOutput: true,
	}
}

func (svc consoleService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		svc.sendMessage(msg)
	}
}

func (svc consoleService) sendMessage(msg *core.EmailMessage) {
	if !msg.HasRecipients() || !msg.HasContent() {
		return
	}

	mu.Lock()
	SentMessages = append(SentMessages, *msg)
	mu.Unlock()

	if svc.disableOutput {
		return
	}

	tos := make([]string, 0, len(msg.To))
	for _, to := range msg.To {
		tos = append(tos, to.String())
	}
	log.Println(strings.Repeat("-", 79))
	log.Printf("To: %s", strings.Join(tos, ", "))
	log.Printf("Subject: %s", svc.subjPrefix+msg.Subject)
	log.Println(fmt.Sprintf("\n%s", msg.TextContent))
}

// ClearSentMessages resets the recorded messages between tests.
func ClearSentMessages() {
	mu.Lock()
	SentMessages = SentMessages[:0]
	mu.Unlock()
}
