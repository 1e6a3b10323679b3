package repository

import (
	"context"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ChatRepository interface {
	GetOrCreate(ctx context.Context, bookingID, customerID, ownerID int64) (*domain.Chat, error)
	Ensure(ctx context.Context, bookingID, customerID, ownerID int64) (*domain.Chat, error)
	MarkRead(ctx context.Context, chatID, readerID int64) error
	AppendMessage(ctx context.Context, msg *domain.ChatMessage) error
	UnreadCount(ctx context.Context, userID int64) (int64, error)
}

type PGChatRepository struct {
	db *pgxpool.Pool
}

func NewChatRepository(db *pgxpool.Pool) ChatRepository {
	return &PGChatRepository{db: db}
}

// GetOrCreate returns the chat for the booking with its full history,
// creating the chat on first access.
func (r *PGChatRepository) GetOrCreate(ctx context.Context, bookingID, customerID, ownerID int64) (*domain.Chat, error) {
	chat, err := r.Ensure(ctx, bookingID, customerID, ownerID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT m.id, m.chat_id, m.sender_id, u.username, m.content, m.created_at, m.is_read
		FROM chat_messages m JOIN users u ON u.id = m.sender_id
		WHERE m.chat_id=$1 ORDER BY m.created_at, m.id`, chat.ID)
	if err != nil {
		return nil, storeErr(err, "chat messages")
	}
	defer rows.Close()

	chat.Messages = make([]domain.ChatMessage, 0)
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.SenderUsername, &m.Content, &m.Timestamp, &m.IsRead); err != nil {
			return nil, storeErr(err, "chat messages")
		}
		chat.Messages = append(chat.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err, "chat messages")
	}
	return chat, nil
}

// Ensure creates the booking's chat if missing and returns it without
// messages. The unique booking_id constraint keeps it at one chat per booking
// when two requests race.
func (r *PGChatRepository) Ensure(ctx context.Context, bookingID, customerID, ownerID int64) (*domain.Chat, error) {
	if _, err := r.db.Exec(ctx, `INSERT INTO chats (booking_id, customer_id, owner_id, last_message_at)
		VALUES ($1, $2, $3, now()) ON CONFLICT (booking_id) DO NOTHING`, bookingID, customerID, ownerID); err != nil {
		return nil, storeErr(err, "chat")
	}

	var (
		chat     domain.Chat
		customer int64
		owner    int64
	)
	if err := r.db.QueryRow(ctx, `SELECT id, booking_id, customer_id, owner_id, last_message_at FROM chats WHERE booking_id=$1`, bookingID).
		Scan(&chat.ID, &chat.BookingID, &customer, &owner, &chat.LastMessageAt); err != nil {
		return nil, storeErr(err, "chat")
	}
	chat.Participants = []int64{customer, owner}
	return &chat, nil
}

// MarkRead flags every message in the chat not sent by readerID as read.
func (r *PGChatRepository) MarkRead(ctx context.Context, chatID, readerID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE chat_messages SET is_read=true WHERE chat_id=$1 AND sender_id<>$2 AND NOT is_read`, chatID, readerID)
	return storeErr(err, "chat messages")
}

// AppendMessage inserts the message and bumps the chat's last_message_at in
// one transaction.
func (r *PGChatRepository) AppendMessage(ctx context.Context, msg *domain.ChatMessage) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return storeErr(err, "chat message")
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO chat_messages (chat_id, sender_id, content, is_read)
		VALUES ($1, $2, $3, false) RETURNING id, created_at`, msg.ChatID, msg.SenderID, msg.Content).
		Scan(&msg.ID, &msg.Timestamp); err != nil {
		return storeErr(err, "chat message")
	}
	if _, err := tx.Exec(ctx, `UPDATE chats SET last_message_at=$1 WHERE id=$2`, msg.Timestamp, msg.ChatID); err != nil {
		return storeErr(err, "chat")
	}
	return storeErr(tx.Commit(ctx), "chat message")
}

func (r *PGChatRepository) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM chat_messages m JOIN chats c ON c.id = m.chat_id
		WHERE (c.customer_id=$1 OR c.owner_id=$1) AND m.sender_id<>$1 AND NOT m.is_read`, userID).Scan(&n)
	if err != nil {
		return 0, storeErr(err, "chat messages")
	}
	return n, nil
}

var _ ChatRepository = (*PGChatRepository)(nil)
