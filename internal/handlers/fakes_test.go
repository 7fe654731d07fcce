package handlers

import (
	"sort"
	"time"

	"github.com/jmalone/microblog/backend/internal/models"
	"gorm.io/gorm"
)

// memStore is a shared in-memory backing store for the fake repositories.
// The fakes mirror the semantics of the Postgres implementations closely
// enough to exercise handler behavior end to end.
type memStore struct {
	users         map[uint]*models.User
	follows       map[[2]uint]bool
	posts         []*models.Post
	messages      []*models.Message
	notifications []*models.Notification

	nextUserID    uint
	nextPostID    uint
	nextMessageID uint
	nextNotifID   uint
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[uint]*models.User),
		follows: make(map[[2]uint]bool),
	}
}

func (s *memStore) addUser(username, email string) *models.User {
	s.nextUserID++
	u := &models.User{
		ID:       s.nextUserID,
		Username: username,
		Email:    email,
		LastSeen: time.Now().UTC(),
	}
	s.users[u.ID] = u
	return u
}

func (s *memStore) addPost(userID uint, body string, at time.Time) *models.Post {
	s.nextPostID++
	p := &models.Post{ID: s.nextPostID, Body: body, Timestamp: at, UserID: userID}
	s.posts = append(s.posts, p)
	return p
}

// --- UserRepository fake ---

type fakeUserRepo struct{ *memStore }

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	r.nextUserID++
	user.ID = r.nextUserID
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdatePassword(userID uint, passwordHash string) error {
	if u, ok := r.users[userID]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (r *fakeUserRepo) TouchLastSeen(userID uint, at time.Time) error {
	if u, ok := r.users[userID]; ok {
		u.LastSeen = at
	}
	return nil
}

func (r *fakeUserRepo) SetLastMessageRead(userID uint, at time.Time) error {
	if u, ok := r.users[userID]; ok {
		u.LastMessageReadTime = &at
	}
	return nil
}

func (r *fakeUserRepo) PostsCount(userID uint) (int64, error) {
	var count int64
	for _, p := range r.posts {
		if p.UserID == userID {
			count++
		}
	}
	return count, nil
}

// --- FollowRepository fake ---

type fakeFollowRepo struct{ *memStore }

func (r *fakeFollowRepo) Follow(followerID, followedID uint) error {
	r.follows[[2]uint{followerID, followedID}] = true
	return nil
}

func (r *fakeFollowRepo) Unfollow(followerID, followedID uint) error {
	delete(r.follows, [2]uint{followerID, followedID})
	return nil
}

func (r *fakeFollowRepo) IsFollowing(followerID, followedID uint) (bool, error) {
	return r.follows[[2]uint{followerID, followedID}], nil
}

func (r *fakeFollowRepo) FollowersCount(userID uint) (int64, error) {
	var count int64
	for edge := range r.follows {
		if edge[1] == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeFollowRepo) FollowingCount(userID uint) (int64, error) {
	var count int64
	for edge := range r.follows {
		if edge[0] == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeFollowRepo) GetFollowers(userID uint, page, limit int) ([]models.User, int64, error) {
	var users []*models.User
	for edge := range r.follows {
		if edge[1] == userID {
			users = append(users, r.users[edge[0]])
		}
	}
	return paginateUsers(users, page, limit)
}

func (r *fakeFollowRepo) GetFollowing(userID uint, page, limit int) ([]models.User, int64, error) {
	var users []*models.User
	for edge := range r.follows {
		if edge[0] == userID {
			users = append(users, r.users[edge[1]])
		}
	}
	return paginateUsers(users, page, limit)
}

// paginateUsers sorts by id ascending and slices a page.
func paginateUsers(matched []*models.User, page, limit int) ([]models.User, int64, error) {
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]models.User, 0, end-start)
	for _, u := range matched[start:end] {
		out = append(out, *u)
	}
	return out, total, nil
}

// --- PostRepository fake ---

type fakePostRepo struct{ *memStore }

func (r *fakePostRepo) CreatePost(post *models.Post) error {
	r.nextPostID++
	post.ID = r.nextPostID
	r.posts = append(r.posts, post)
	return nil
}

func (r *fakePostRepo) GetPostByID(id uint) (*models.Post, error) {
	for _, p := range r.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePostRepo) GetPostsByUserID(userID uint, page, limit int) ([]models.Post, int64, error) {
	var matched []*models.Post
	for _, p := range r.posts {
		if p.UserID == userID {
			matched = append(matched, p)
		}
	}
	return paginatePosts(matched, page, limit)
}

func (r *fakePostRepo) FollowingPosts(userID uint, page, limit int) ([]models.Post, int64, error) {
	var matched []*models.Post
	for _, p := range r.posts {
		if p.UserID == userID || r.follows[[2]uint{userID, p.UserID}] {
			matched = append(matched, p)
		}
	}
	return paginatePosts(matched, page, limit)
}

func (r *fakePostRepo) DeletePost(id uint) error {
	for i, p := range r.posts {
		if p.ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return nil
		}
	}
	return nil
}

// paginatePosts sorts newest first (id descending on ties) and slices a page.
func paginatePosts(matched []*models.Post, page, limit int) ([]models.Post, int64, error) {
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	total := int64(len(matched))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]models.Post, 0, end-start)
	for _, p := range matched[start:end] {
		out = append(out, *p)
	}
	return out, total, nil
}

// --- MessageRepository fake ---

type fakeMessageRepo struct{ *memStore }

func (r *fakeMessageRepo) CreateMessage(message *models.Message) error {
	r.nextMessageID++
	message.ID = r.nextMessageID
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeMessageRepo) GetReceived(recipientID uint, page, limit int) ([]models.Message, int64, error) {
	var matched []models.Message
	for _, m := range r.messages {
		if m.RecipientID == recipientID {
			matched = append(matched, *m)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Timestamp.After(matched[j].Timestamp) })
	return matched, int64(len(matched)), nil
}

func (r *fakeMessageRepo) GetSent(senderID uint, page, limit int) ([]models.Message, int64, error) {
	var matched []models.Message
	for _, m := range r.messages {
		if m.SenderID == senderID {
			matched = append(matched, *m)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Timestamp.After(matched[j].Timestamp) })
	return matched, int64(len(matched)), nil
}

func (r *fakeMessageRepo) UnreadCount(recipientID uint, since time.Time) (int64, error) {
	var count int64
	for _, m := range r.messages {
		if m.RecipientID == recipientID && m.Timestamp.After(since) {
			count++
		}
	}
	return count, nil
}

// --- NotificationRepository fake ---

type fakeNotificationRepo struct{ *memStore }

func (r *fakeNotificationRepo) ReplaceByName(userID uint, name, payloadJSON string) (*models.Notification, error) {
	kept := r.notifications[:0]
	for _, n := range r.notifications {
		if !(n.UserID == userID && n.Name == name) {
			kept = append(kept, n)
		}
	}
	r.notifications = kept

	r.nextNotifID++
	n := &models.Notification{
		ID:          r.nextNotifID,
		Name:        name,
		UserID:      userID,
		Timestamp:   float64(time.Now().UnixNano()) / 1e9,
		PayloadJSON: payloadJSON,
	}
	r.notifications = append(r.notifications, n)
	return n, nil
}

func (r *fakeNotificationRepo) GetSince(userID uint, since float64) ([]models.Notification, error) {
	var matched []models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID && n.Timestamp > since {
			matched = append(matched, *n)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Timestamp < matched[j].Timestamp })
	return matched, nil
}

func (r *fakeNotificationRepo) GetByUserAndName(userID uint, name string) (*models.Notification, error) {
	for _, n := range r.notifications {
		if n.UserID == userID && n.Name == name {
			return n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// --- Mailer fake ---

type fakeMailer struct {
	to       string
	username string
	token    string
	sent     int
}

func (m *fakeMailer) SendPasswordReset(to, username, token string) error {
	m.to = to
	m.username = username
	m.token = token
	m.sent++
	return nil
}
