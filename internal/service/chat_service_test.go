package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/muudhq/muud-backend/internal/domain"
	memoryrepo "github.com/muudhq/muud-backend/internal/repository/memory"
)

type chatFixture struct {
	users *memoryrepo.UserRepo
	convs *memoryrepo.ConversationRepo
	msgs  *memoryrepo.MessageRepo
	svc   *ChatService
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	users := memoryrepo.NewUserRepo()
	convs := memoryrepo.NewConversationRepo()
	msgs := memoryrepo.NewMessageRepo()
	return &chatFixture{
		users: users,
		convs: convs,
		msgs:  msgs,
		svc:   NewChatService(convs, msgs, users, zap.NewNop().Sugar()),
	}
}

func (f *chatFixture) addUser(t *testing.T, fullName, username string) uuid.UUID {
	t.Helper()
	user := &domain.User{
		ID:        uuid.New(),
		FullName:  fullName,
		Username:  username,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user.ID
}

func TestCreateOrGetConversation_SameInBothDirections(t *testing.T) {
	req := require.New(t)
	f := newChatFixture(t)
	ctx := context.Background()

	alice := f.addUser(t, "Alice", "alice")
	bob := f.addUser(t, "Bob", "bob")

	c1, err := f.svc.CreateOrGetConversation(ctx, alice, bob)
	req.NoError(err)

	c2, err := f.svc.CreateOrGetConversation(ctx, bob, alice)
	req.NoError(err)

	req.Equal(c1.ID, c2.ID)
	req.Equal(1, f.convs.Count())
	req.True(c1.Participants.Contains(alice))
	req.True(c1.Participants.Contains(bob))
}

func TestCreateOrGetConversation_SelfRejected(t *testing.T) {
	req := require.New(t)
	f := newChatFixture(t)

	alice := f.addUser(t, "Alice", "alice")

	_, err := f.svc.CreateOrGetConversation(context.Background(), alice, alice)
	req.ErrorIs(err, ErrInvalidIdentity)
	req.Equal(0, f.convs.Count())
}

func TestCreateOrGetConversation_UnknownOtherUser(t *testing.T) {
	req := require.New(t)
	f := newChatFixture(t)

	alice := f.addUser(t, "Alice", "alice")

	_, err := f.svc.CreateOrGetConversation(context.Background(), alice, uuid.New())
	req.ErrorIs(err, ErrUserNotFound)
	req.Equal(0, f.convs.Count())
}

func TestCreateOrGetConversation_ConcurrentFirstContact(t *testing.T) {
	req := require.New(t)
	f := newChatFixture(t)
	ctx := context.Background()

	alice := f.addUser(t, "Alice", "alice")
	bob := f.addUser(t, "Bob", "bob")

	ids := make([]uuid.UUID, 16)
	var g errgroup.Group
	for i := range ids {
		i := i
		g.Go(func() error {
			actor, other := alice, bob
			if i%2 == 1 {
				actor, other = bob, alice
			}
			conv, err := f.svc.CreateOrGetConversation(ctx, actor, other)
			if err != nil {
				return err
			}
			ids[i] = conv.ID
			return nil
		})
	}
	req.NoError(g.Wait())

	req.Equal(1, f.convs.Count())
	for _, id := range ids {
		req.Equal(ids[0], id)
	}
}

func TestSendMessage_WhitespaceOnlyRejected(t *testing.T) {
	req := require.New(t)
	f := newChatFixture(t)
	ctx := context.Background()

	alice := f.addUser(t, "Alice", "alice")
	bob := f.addUser(t, "Bob", "bob")

	conv, err := f.svc.CreateOrGetConversation(ctx, alice, bob)
	req.NoError(err)

	_, err = f.svc.SendMessage(ctx, alice, conv.ID, "   \n\t ", "")
	req.ErrorIs(err, ErrEmptyMessage)

	messages, err := f.svc.ListMessages(ctx, alice, conv.ID, 0, nil)
	req.NoError(err)
	req.Empty(messages)
}

func TestSendMessage_UnknownConversation(t *testing.T) {
	req := require.New(t)
	f := newChatFixture(t)

	alice := f.addUser(t, "Alice", "alice")

	_, err := f.svc.SendMessage(context.Background(), alice, uuid.New(), "hi", "")
	req.ErrorIs(err, ErrConversationNotFound)
}

func TestSendMessage_NonParticipantForbidden(t *testing.T) {
	req := require.New(t)
	f := newChatFixture(t)
	ctx := context.Background()

	alice := f.addUser(t, "Alice", "alice")
	bob := f.addUser(t, "Bob", "bob")
	carol := f.addUser(t, "Carol", "carol")

	conv, err := f.svc.CreateOrGetConversation(ctx, alice, bob)
	req.NoError(err)

	_, err = f.svc.SendMessage(ctx, carol, conv.ID, "let me in", "")
	req.ErrorIs(err, ErrNotParticipant)

	messages, err := f.svc.ListMessages(ctx, alice, conv.ID, 0, nil)
	req.NoError(err)
	req.Empty(messages)
}

func TestSendMessage_TrimsAndUpdatesPreview(t *testing.T) {
	req := require.New(t)
	f := newChatFixture(t)
	ctx := context.Background()

	alice := f.addUser(t, "Alice", "alice")
	bob := f.addUser(t, "Bob", "bob")

	conv, err := f.svc.CreateOrGetConversation(ctx, alice, bob)
	req.NoError(err)

	msg, err := f.svc.SendMessage(ctx, alice, conv.ID, "  hey bob  ", "")
	req.NoError(err)
	req.Equal("hey bob", msg.Text)
	req.Equal(alice, msg.SenderID)

	stored, err := f.convs.GetByID(ctx, conv.ID)
	req.NoError(err)
	req.Equal("hey bob", stored.LastMessageText)
	req.NotNil(stored.LastMessageSender)
	req.Equal(alice, *stored.LastMessageSender)
	req.NotNil(stored.LastMessageAt)
}

func TestListMessages_AscendingOrder(t *testing.T) {
	req := require.New(t)
	f := newChatFixture(t)
	ctx := context.Background()

	alice := f.addUser(t, "Alice", "alice")
	bob := f.addUser(t, "Bob", "bob")

	conv, err := f.svc.CreateOrGetConversation(ctx, alice, bob)
	req.NoError(err)

	const n = 10
	for i := 0; i < n; i++ {
		sender := alice
		if i%2 == 1 {
			sender = bob
		}
		_, err := f.svc.SendMessage(ctx, sender, conv.ID, fmt.Sprintf("message %d", i), "")
		req.NoError(err)
	}

	messages, err := f.svc.ListMessages(ctx, bob, conv.ID, 0, nil)
	req.NoError(err)
	req.Len(messages, n)
	for i, msg := range messages {
		req.Equal(fmt.Sprintf("message %d", i), msg.Text)
		if i > 0 {
			prev := messages[i-1]
			ordered := prev.CreatedAt.Before(msg.CreatedAt) ||
				(prev.CreatedAt.Equal(msg.CreatedAt) && prev.Seq < msg.Seq)
			req.True(ordered, "messages out of order at index %d", i)
		}
	}
}

func TestListMessages_BeforeCursor(t *testing.T) {
	req := require.New(t)
	f := newChatFixture(t)
	ctx := context.Background()

	alice := f.addUser(t, "Alice", "alice")
	bob := f.addUser(t, "Bob", "bob")

	conv, err := f.svc.CreateOrGetConversation(ctx, alice, bob)
	req.NoError(err)

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		msg, err := f.svc.SendMessage(ctx, alice, conv.ID, fmt.Sprintf("message %d", i), "")
		req.NoError(err)
		ids = append(ids, msg.ID)
	}

	// Everything strictly older than the third message.
	messages, err := f.svc.ListMessages(ctx, alice, conv.ID, 0, &ids[2])
	req.NoError(err)
	req.Len(messages, 2)
	req.Equal(ids[0], messages[0].ID)
	req.Equal(ids[1], messages[1].ID)
}

func TestListMessages_LimitClamped(t *testing.T) {
	req := require.New(t)
	f := newChatFixture(t)
	ctx := context.Background()

	alice := f.addUser(t, "Alice", "alice")
	bob := f.addUser(t, "Bob", "bob")

	conv, err := f.svc.CreateOrGetConversation(ctx, alice, bob)
	req.NoError(err)

	for i := 0; i < 4; i++ {
		_, err := f.svc.SendMessage(ctx, alice, conv.ID, fmt.Sprintf("message %d", i), "")
		req.NoError(err)
	}

	messages, err := f.svc.ListMessages(ctx, alice, conv.ID, 2, nil)
	req.NoError(err)
	req.Len(messages, 2)

	// Out-of-range limits fall back to the maximum page size.
	messages, err = f.svc.ListMessages(ctx, alice, conv.ID, MaxMessagePageSize+1, nil)
	req.NoError(err)
	req.Len(messages, 4)
}

func TestListMyConversations_OnlyMine(t *testing.T) {
	req := require.New(t)
	f := newChatFixture(t)
	ctx := context.Background()

	alice := f.addUser(t, "Alice", "alice")
	bob := f.addUser(t, "Bob", "bob")
	carol := f.addUser(t, "Carol", "carol")

	ab, err := f.svc.CreateOrGetConversation(ctx, alice, bob)
	req.NoError(err)
	_, err = f.svc.CreateOrGetConversation(ctx, bob, carol)
	req.NoError(err)

	summaries, err := f.svc.ListMyConversations(ctx, alice)
	req.NoError(err)
	req.Len(summaries, 1)
	req.Equal(ab.ID, summaries[0].ID)
	req.Equal(bob, summaries[0].OtherUserID)
	req.Equal("Bob", summaries[0].OtherFullName)
	req.Equal("bob", summaries[0].OtherUsername)
}

func TestListMyConversations_RecentActivityFirst(t *testing.T) {
	req := require.New(t)
	f := newChatFixture(t)
	ctx := context.Background()

	alice := f.addUser(t, "Alice", "alice")
	bob := f.addUser(t, "Bob", "bob")
	carol := f.addUser(t, "Carol", "carol")

	ab, err := f.svc.CreateOrGetConversation(ctx, alice, bob)
	req.NoError(err)
	ac, err := f.svc.CreateOrGetConversation(ctx, alice, carol)
	req.NoError(err)

	_, err = f.svc.SendMessage(ctx, alice, ab.ID, "first", "")
	req.NoError(err)
	time.Sleep(5 * time.Millisecond)
	_, err = f.svc.SendMessage(ctx, alice, ac.ID, "second", "")
	req.NoError(err)

	summaries, err := f.svc.ListMyConversations(ctx, alice)
	req.NoError(err)
	req.Len(summaries, 2)
	req.Equal(ac.ID, summaries[0].ID)
	req.Equal(ab.ID, summaries[1].ID)
}
