package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Cyclone1070/sqlagent/internal/provider/models"
	"github.com/Cyclone1070/sqlagent/internal/sqlexec"
	"github.com/Cyclone1070/sqlagent/internal/testing/mocks"
	"github.com/Cyclone1070/sqlagent/internal/testing/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoke_ProseReturnedVerbatim(t *testing.T) {
	provider := mocks.NewMockProvider().WithTextResponse("  There are 3 tables.\n")
	executor := &mocks.MockExecutor{}
	a := New(provider, executor)

	reply, err := a.Invoke(context.Background(), "How many tables?")

	require.NoError(t, err)
	assert.Equal(t, "  There are 3 tables.\n", reply.Text)
	assert.Equal(t, KindText, reply.Kind)
	assert.Empty(t, executor.Calls())

	transcript := a.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, models.Message{Role: models.RoleUser, Content: "How many tables?"}, transcript[0])
	assert.Equal(t, models.Message{Role: models.RoleAssistant, Content: "  There are 3 tables.\n"}, transcript[1])
}

func TestInvoke_FencedSelectRunsRead(t *testing.T) {
	provider := mocks.NewMockProvider().WithTextResponse("```sql\nSELECT 1;\n```")
	executor := &mocks.MockExecutor{}
	a := New(provider, executor)

	reply, err := a.Invoke(context.Background(), "one please")

	require.NoError(t, err)
	assert.Equal(t, "read: SELECT 1;", reply.Text)
	assert.Equal(t, KindRead, reply.Kind)
	assert.Equal(t, []mocks.ExecuteCall{{Query: "SELECT 1;", Commit: false}}, executor.Calls())
	assert.Len(t, a.Transcript(), 1) // No assistant entry on the SQL path
}

func TestInvoke_WriteRunsWithCommit(t *testing.T) {
	provider := mocks.NewMockProvider().WithTextResponse("INSERT INTO users (name) VALUES ('ada')")
	executor := &mocks.MockExecutor{}
	a := New(provider, executor)

	reply, err := a.Invoke(context.Background(), "add ada")

	require.NoError(t, err)
	assert.Equal(t, KindWrite, reply.Kind)
	assert.Equal(t, []mocks.ExecuteCall{{Query: "INSERT INTO users (name) VALUES ('ada')", Commit: true}}, executor.Calls())
}

func TestInvoke_HistoryNotReplayed(t *testing.T) {
	provider := mocks.NewMockProvider().
		WithTextResponse("first answer").
		WithTextResponse("second answer")
	a := New(provider, &mocks.MockExecutor{})

	_, err := a.Invoke(context.Background(), "first")
	require.NoError(t, err)
	_, err = a.Invoke(context.Background(), "second")
	require.NoError(t, err)

	calls := provider.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "second", calls[1].Prompt)
	assert.Nil(t, calls[1].History)
	assert.Len(t, a.Transcript(), 4)
}

func TestInvoke_ProviderErrorPropagates(t *testing.T) {
	provErr := &models.ProviderError{Code: models.ErrorCodeRateLimit, Message: "rate limit exceeded", Retryable: true}
	provider := mocks.NewMockProvider().WithError(provErr)
	executor := &mocks.MockExecutor{}
	a := New(provider, executor)

	_, err := a.Invoke(context.Background(), "anything")

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrRateLimit))
	assert.Empty(t, executor.Calls())
	assert.Len(t, a.Transcript(), 1) // User turn is recorded before the call
}

func TestInvoke_TruncatedReplyIsUsed(t *testing.T) {
	truncated := &models.ProviderError{Code: models.ErrorCodeContextLength, Message: "response truncated due to max tokens"}

	tests := []struct {
		name     string
		text     string
		wantKind Kind
		wantText string
	}{
		{"complete select", "SELECT name FROM users;", KindRead, "read: SELECT name FROM users;"},
		{"partial prose", "The users table has", KindText, "The users table has"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := mocks.NewMockProvider().WithResponse(tt.text, truncated)
			a := New(provider, &mocks.MockExecutor{})

			reply, err := a.Invoke(context.Background(), "list users")

			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, reply.Kind)
			assert.Equal(t, tt.wantText, reply.Text)
		})
	}
}

func TestInvoke_TruncatedWithoutTextFails(t *testing.T) {
	truncated := &models.ProviderError{Code: models.ErrorCodeContextLength, Message: "response truncated due to max tokens"}
	provider := mocks.NewMockProvider().WithResponse("", truncated)
	executor := &mocks.MockExecutor{}
	a := New(provider, executor)

	_, err := a.Invoke(context.Background(), "list users")

	require.Error(t, err)
	assert.Empty(t, executor.Calls())
}

func TestInvoke_OtherErrorDiscardsText(t *testing.T) {
	blocked := &models.ProviderError{Code: models.ErrorCodeContentBlocked, Message: "blocked"}
	provider := mocks.NewMockProvider().WithResponse("SELECT 1", blocked)
	executor := &mocks.MockExecutor{}
	a := New(provider, executor)

	_, err := a.Invoke(context.Background(), "anything")

	assert.True(t, errors.Is(err, models.ErrContentBlocked))
	assert.Empty(t, executor.Calls())
}

func TestTranscript_ReadableWhileModelRuns(t *testing.T) {
	provider := mocks.NewMockProvider()
	a := New(provider, &mocks.MockExecutor{})

	var seen []models.Message
	provider.GenerateFunc = func(ctx context.Context, prompt string, history []models.Message) (string, error) {
		done := make(chan []models.Message, 1)
		go func() { done <- a.Transcript() }()
		select {
		case seen = <-done:
			return "ok", nil
		case <-time.After(2 * time.Second):
			return "", errors.New("transcript blocked during model call")
		}
	}

	reply, err := a.Invoke(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, "ok", reply.Text)
	assert.Equal(t, []models.Message{{Role: models.RoleUser, Content: "hello"}}, seen)
}

func TestTranscript_ReturnsCopy(t *testing.T) {
	a := New(mocks.NewMockProvider().WithTextResponse("hi"), &mocks.MockExecutor{})
	_, err := a.Invoke(context.Background(), "hello")
	require.NoError(t, err)

	transcript := a.Transcript()
	transcript[0].Content = "changed"

	assert.Equal(t, "hello", a.Transcript()[0].Content)
}

func TestInvoke_WithRealDatabase(t *testing.T) {
	executor := sqlexec.New(testhelpers.NewSQLiteDB(t, "CREATE TABLE pets (name TEXT)"))
	ctx := context.Background()

	provider := mocks.NewMockProvider().
		WithTextResponse("```sql\nINSERT INTO pets (name) VALUES ('rex');\n```").
		WithTextResponse("```sql\nSELECT name FROM pets;\n```").
		WithTextResponse("SELECT name FROM pets WHERE name = 'nobody'")
	a := New(provider, executor)

	reply, err := a.Invoke(ctx, "add a dog named rex")
	require.NoError(t, err)
	assert.Equal(t, sqlexec.CommittedMessage, reply.Text)

	reply, err = a.Invoke(ctx, "list pets")
	require.NoError(t, err)
	assert.Equal(t, "| name |\n|------|\n| rex |", reply.Text)

	reply, err = a.Invoke(ctx, "find nobody")
	require.NoError(t, err)
	assert.Equal(t, sqlexec.NoResultsMessage, reply.Text)
}
