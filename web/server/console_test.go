package server

import (
	"fmt"
	"testing"
	"time"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	console := NewConsole(10)
	logger := NewWebLogger("test-render-123", console)

	testMessage := "Test log message"
	logger.Printf("%s\n", testMessage)

	messages := console.Recent()
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}
	msg := messages[0]
	expectedMessage := testMessage + "\n"
	if msg.Message != expectedMessage {
		t.Errorf("Expected message '%s', got '%s'", expectedMessage, msg.Message)
	}
	if msg.RenderID != "test-render-123" {
		t.Errorf("Expected render id 'test-render-123', got '%s'", msg.RenderID)
	}
	if msg.Level != "info" {
		t.Errorf("Expected level 'info', got '%s'", msg.Level)
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
	}
}

func TestConsole_DropsOldest(t *testing.T) {
	console := NewConsole(3)
	for i := 1; i <= 5; i++ {
		console.Add(ConsoleMessage{Message: fmt.Sprintf("Message %d", i)})
	}

	messages := console.Recent()
	expected := []string{"Message 3", "Message 4", "Message 5"}
	if len(messages) != len(expected) {
		t.Fatalf("Expected %d messages, got %d", len(expected), len(messages))
	}
	for i, want := range expected {
		if messages[i].Message != want {
			t.Errorf("Message %d: expected '%s', got '%s'", i, want, messages[i].Message)
		}
	}
}

func TestConsole_RecentIsCopy(t *testing.T) {
	console := NewConsole(2)
	console.Add(ConsoleMessage{Message: "first"})

	messages := console.Recent()
	messages[0].Message = "changed"

	if got := console.Recent()[0].Message; got != "first" {
		t.Errorf("Expected stored message to be unchanged, got '%s'", got)
	}
}

func TestConsole_ZeroCapacity(t *testing.T) {
	console := NewConsole(0)
	console.Add(ConsoleMessage{Message: "dropped"})
	if n := len(console.Recent()); n != 0 {
		t.Errorf("Expected no messages, got %d", n)
	}
}

func TestWebLogger_NilConsole(t *testing.T) {
	// This should not panic
	logger := NewWebLogger("test-render-nil", nil)
	logger.Printf("Test message with nil console\n")
}

func TestWebLogger_FormattedMessages(t *testing.T) {
	console := NewConsole(10)
	logger := NewWebLogger("test-render-format", console)

	logger.Printf("Loaded scene %q: %d primitives, %d lights\n", "showcase", 6, 1)

	expected := "Loaded scene \"showcase\": 6 primitives, 1 lights\n"
	if got := console.Recent()[0].Message; got != expected {
		t.Errorf("Expected formatted message '%s', got '%s'", expected, got)
	}
}
