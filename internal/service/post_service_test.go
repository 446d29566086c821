package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grad-konnect/showcase-api/internal/models"
	"github.com/grad-konnect/showcase-api/internal/repository"
	appErrors "github.com/grad-konnect/showcase-api/pkg/errors"
)

type postRepoStub struct {
	posts      map[int64]*models.Post
	likes      map[int64]map[string]bool
	comments   map[int64][]models.Comment
	nextID     int64
	err        error
	lastFilter models.PostFilter
}

func newPostRepoStub() *postRepoStub {
	return &postRepoStub{
		posts:    make(map[int64]*models.Post),
		likes:    make(map[int64]map[string]bool),
		comments: make(map[int64][]models.Comment),
	}
}

func (s *postRepoStub) FindByID(ctx context.Context, id int64, viewer string) (*models.Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	post, ok := s.posts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *post
	copied.IsLiked = viewer != "" && s.likes[id][viewer]
	copied.CommentData = append([]models.Comment{}, s.comments[id]...)
	return &copied, nil
}

func (s *postRepoStub) List(ctx context.Context, viewer string, filter models.PostFilter) ([]models.Post, int, error) {
	s.lastFilter = filter
	if s.err != nil {
		return nil, 0, s.err
	}
	result := []models.Post{}
	for id := int64(1); id <= s.nextID; id++ {
		post, ok := s.posts[id]
		if !ok {
			continue
		}
		if filter.Status != "" && post.Status != filter.Status {
			continue
		}
		if filter.UserHandle != "" && post.UserHandle != filter.UserHandle {
			continue
		}
		copied, _ := s.FindByID(ctx, id, viewer)
		result = append(result, *copied)
	}
	return result, len(result), nil
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	if s.err != nil {
		return s.err
	}
	s.nextID++
	post.ID = s.nextID
	post.Version = 1
	post.CreatedAt = time.Now().UTC()
	post.UpdatedAt = post.CreatedAt
	stored := *post
	s.posts[post.ID] = &stored
	return nil
}

func (s *postRepoStub) UpdateStatus(ctx context.Context, id int64, status models.PostStatus, reason *string, version int) error {
	if s.err != nil {
		return s.err
	}
	post, ok := s.posts[id]
	if !ok {
		return sql.ErrNoRows
	}
	if post.Version != version {
		return repository.ErrStaleVersion
	}
	post.Status = status
	post.RejectionReason = reason
	post.Version++
	return nil
}

func (s *postRepoStub) ToggleLike(ctx context.Context, id int64, viewer string, version int) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	post, ok := s.posts[id]
	if !ok {
		return false, sql.ErrNoRows
	}
	if post.Version != version {
		return false, repository.ErrStaleVersion
	}
	if s.likes[id] == nil {
		s.likes[id] = make(map[string]bool)
	}
	liked := !s.likes[id][viewer]
	s.likes[id][viewer] = liked
	if liked {
		post.Likes++
	} else {
		post.Likes--
	}
	post.Version++
	return liked, nil
}

func (s *postRepoStub) IncrementShares(ctx context.Context, id int64, version int) error {
	if s.err != nil {
		return s.err
	}
	post, ok := s.posts[id]
	if !ok {
		return sql.ErrNoRows
	}
	if post.Version != version {
		return repository.ErrStaleVersion
	}
	post.Shares++
	post.Version++
	return nil
}

func (s *postRepoStub) AddComment(ctx context.Context, comment *models.Comment, version int) error {
	if s.err != nil {
		return s.err
	}
	post, ok := s.posts[comment.PostID]
	if !ok {
		return sql.ErrNoRows
	}
	if post.Version != version {
		return repository.ErrStaleVersion
	}
	comment.ID = int64(len(s.comments[comment.PostID]) + 1)
	comment.CreatedAt = time.Now().UTC()
	s.comments[comment.PostID] = append(s.comments[comment.PostID], *comment)
	post.Comments = len(s.comments[comment.PostID])
	post.Version++
	return nil
}

type userRepoStub struct {
	users     map[string]*models.User
	increments map[string]int
}

func newUserRepoStub(users ...*models.User) *userRepoStub {
	stub := &userRepoStub{users: make(map[string]*models.User), increments: make(map[string]int)}
	for _, u := range users {
		stub.users[u.Handle] = u
	}
	return stub
}

func (s *userRepoStub) FindByHandle(ctx context.Context, handle string) (*models.User, error) {
	user, ok := s.users[handle]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (s *userRepoStub) IncrementPostCount(ctx context.Context, handle string) error {
	s.increments[handle]++
	return nil
}

func studentUser(handle string) *models.User {
	return &models.User{Handle: handle, Name: handle, Role: models.RoleStudent}
}

func mentorUser(handle string) *models.User {
	return &models.User{Handle: handle, Name: handle, Role: models.RoleMentor}
}

func submitDemoPost(t *testing.T, svc *PostService, author string) *models.Post {
	t.Helper()
	post, err := svc.Submit(context.Background(), author, models.PostForm{
		Title:    "Weather App",
		Content:  "A minimalist weather dashboard.",
		Hashtags: "#API, #WebDev, ,#UIUX",
	})
	require.NoError(t, err)
	return post
}

func TestPostServiceSubmitCreatesPending(t *testing.T) {
	posts := newPostRepoStub()
	users := newUserRepoStub(studentUser("logic_lord"))
	svc := NewPostService(posts, users, nil, nil)

	post := submitDemoPost(t, svc, "logic_lord")

	assert.Equal(t, models.PostPending, post.Status)
	assert.Equal(t, []string{"#API", "#WebDev", "#UIUX"}, []string(post.Hashtags))
	assert.Zero(t, post.Likes)
	assert.Zero(t, post.Comments)
	assert.Zero(t, post.Shares)
	assert.NotNil(t, post.CommentData)
	assert.Empty(t, post.CommentData)
	assert.Equal(t, 1, users.increments["logic_lord"])
}

func TestPostServiceSubmitMentorForbidden(t *testing.T) {
	svc := NewPostService(newPostRepoStub(), newUserRepoStub(mentorUser("prof_davinci")), nil, nil)

	_, err := svc.Submit(context.Background(), "prof_davinci", models.PostForm{Title: "t", Content: "c"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestPostServiceSubmitUnknownAuthor(t *testing.T) {
	svc := NewPostService(newPostRepoStub(), newUserRepoStub(), nil, nil)

	_, err := svc.Submit(context.Background(), "ghost", models.PostForm{Title: "t", Content: "c"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPostServiceReviewApprove(t *testing.T) {
	posts := newPostRepoStub()
	svc := NewPostService(posts, newUserRepoStub(studentUser("logic_lord")), nil, nil)
	post := submitDemoPost(t, svc, "logic_lord")

	reviewed, err := svc.Review(context.Background(), post.ID, models.ReviewRequest{Decision: models.DecisionApprove})
	require.NoError(t, err)
	assert.Equal(t, models.PostApproved, reviewed.Status)
	assert.Nil(t, reviewed.RejectionReason)
}

func TestPostServiceReviewRejectStoresReason(t *testing.T) {
	posts := newPostRepoStub()
	svc := NewPostService(posts, newUserRepoStub(studentUser("logic_lord")), nil, nil)
	post := submitDemoPost(t, svc, "logic_lord")

	reviewed, err := svc.Review(context.Background(), post.ID, models.ReviewRequest{
		Decision: models.DecisionReject,
		Reason:   "  needs documentation  ",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PostRejected, reviewed.Status)
	require.NotNil(t, reviewed.RejectionReason)
	assert.Equal(t, "needs documentation", *reviewed.RejectionReason)
}

func TestPostServiceReviewRejectRequiresReason(t *testing.T) {
	posts := newPostRepoStub()
	svc := NewPostService(posts, newUserRepoStub(studentUser("logic_lord")), nil, nil)
	post := submitDemoPost(t, svc, "logic_lord")

	_, err := svc.Review(context.Background(), post.ID, models.ReviewRequest{
		Decision: models.DecisionReject,
		Reason:   "   ",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	current, err := svc.Get(context.Background(), post.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.PostPending, current.Status)
}

func TestPostServiceReviewTwiceConflicts(t *testing.T) {
	posts := newPostRepoStub()
	svc := NewPostService(posts, newUserRepoStub(studentUser("logic_lord")), nil, nil)
	post := submitDemoPost(t, svc, "logic_lord")

	_, err := svc.Review(context.Background(), post.ID, models.ReviewRequest{Decision: models.DecisionApprove})
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), post.ID, models.ReviewRequest{Decision: models.DecisionReject, Reason: "too late"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAlreadyReviewed.Code, appErrors.FromError(err).Code)
}

func TestPostServiceLikeToggleRestoresState(t *testing.T) {
	posts := newPostRepoStub()
	svc := NewPostService(posts, newUserRepoStub(studentUser("logic_lord")), nil, nil)
	post := submitDemoPost(t, svc, "logic_lord")
	_, err := svc.Review(context.Background(), post.ID, models.ReviewRequest{Decision: models.DecisionApprove})
	require.NoError(t, err)

	liked, err := svc.Like(context.Background(), post.ID, "pixel_pioneer")
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)
	assert.True(t, liked.IsLiked)

	unliked, err := svc.Like(context.Background(), post.ID, "pixel_pioneer")
	require.NoError(t, err)
	assert.Equal(t, 0, unliked.Likes)
	assert.False(t, unliked.IsLiked)
}

func TestPostServiceLikedFlagIsPerViewer(t *testing.T) {
	posts := newPostRepoStub()
	svc := NewPostService(posts, newUserRepoStub(studentUser("logic_lord")), nil, nil)
	post := submitDemoPost(t, svc, "logic_lord")
	_, err := svc.Review(context.Background(), post.ID, models.ReviewRequest{Decision: models.DecisionApprove})
	require.NoError(t, err)

	_, err = svc.Like(context.Background(), post.ID, "pixel_pioneer")
	require.NoError(t, err)

	other, err := svc.Get(context.Background(), post.ID, "data_dynamo")
	require.NoError(t, err)
	assert.Equal(t, 1, other.Likes)
	assert.False(t, other.IsLiked)
}

func TestPostServiceInteractionRequiresApproval(t *testing.T) {
	posts := newPostRepoStub()
	svc := NewPostService(posts, newUserRepoStub(studentUser("logic_lord")), nil, nil)
	pending := submitDemoPost(t, svc, "logic_lord")

	_, err := svc.Like(context.Background(), pending.ID, "pixel_pioneer")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPostNotApproved.Code, appErrors.FromError(err).Code)

	rejected := submitDemoPost(t, svc, "logic_lord")
	_, err = svc.Review(context.Background(), rejected.ID, models.ReviewRequest{Decision: models.DecisionReject, Reason: "not a project"})
	require.NoError(t, err)

	_, err = svc.Share(context.Background(), rejected.ID, "pixel_pioneer")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPostNotApproved.Code, appErrors.FromError(err).Code)

	_, err = svc.AddComment(context.Background(), rejected.ID, "pixel_pioneer", models.CommentRequest{Text: "nice"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPostNotApproved.Code, appErrors.FromError(err).Code)
}

func TestPostServiceCommentKeepsCounterInSync(t *testing.T) {
	posts := newPostRepoStub()
	svc := NewPostService(posts, newUserRepoStub(studentUser("logic_lord")), nil, nil)
	post := submitDemoPost(t, svc, "logic_lord")
	_, err := svc.Review(context.Background(), post.ID, models.ReviewRequest{Decision: models.DecisionApprove})
	require.NoError(t, err)

	first, err := svc.AddComment(context.Background(), post.ID, "pixel_pioneer", models.CommentRequest{Text: "great work"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Comments)
	assert.Len(t, first.CommentData, 1)

	second, err := svc.AddComment(context.Background(), post.ID, "data_dynamo", models.CommentRequest{Text: "agreed"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Comments)
	assert.Len(t, second.CommentData, 2)
	assert.Equal(t, second.Comments, len(second.CommentData))
}

func TestPostServiceStaleWriteConflict(t *testing.T) {
	posts := newPostRepoStub()
	svc := NewPostService(posts, newUserRepoStub(studentUser("logic_lord")), nil, nil)
	post := submitDemoPost(t, svc, "logic_lord")

	// another writer moved the version forward between read and write
	posts.posts[post.ID].Version = 7

	_, err := svc.Review(context.Background(), post.ID, models.ReviewRequest{Decision: models.DecisionApprove})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStaleWrite.Code, appErrors.FromError(err).Code)
}

func TestPostServiceReviewQueueListsPendingOnly(t *testing.T) {
	posts := newPostRepoStub()
	svc := NewPostService(posts, newUserRepoStub(studentUser("logic_lord")), nil, nil)
	first := submitDemoPost(t, svc, "logic_lord")
	submitDemoPost(t, svc, "logic_lord")

	_, err := svc.Review(context.Background(), first.ID, models.ReviewRequest{Decision: models.DecisionApprove})
	require.NoError(t, err)

	queue, pagination, err := svc.ReviewQueue(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, models.PostPending, queue[0].Status)
	require.NotNil(t, pagination)
	assert.Equal(t, 1, pagination.TotalCount)
}

func TestPostServiceReviewQueuePassesPagination(t *testing.T) {
	posts := newPostRepoStub()
	svc := NewPostService(posts, newUserRepoStub(studentUser("logic_lord")), nil, nil)
	submitDemoPost(t, svc, "logic_lord")

	_, pagination, err := svc.ReviewQueue(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, posts.lastFilter.Page)
	assert.Equal(t, 10, posts.lastFilter.PageSize)
	require.NotNil(t, pagination)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 10, pagination.PageSize)
}

func TestPostServiceLifecycle(t *testing.T) {
	posts := newPostRepoStub()
	users := newUserRepoStub(studentUser("pixel_pioneer"))
	svc := NewPostService(posts, users, nil, nil)

	post, err := svc.Submit(context.Background(), "pixel_pioneer", models.PostForm{
		Title:    "Project Vision",
		Content:  "Real-time object detection app.",
		Hashtags: "#AI,#ComputerVision",
	})
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), post.ID, models.ReviewRequest{Decision: models.DecisionApprove})
	require.NoError(t, err)

	_, err = svc.Like(context.Background(), post.ID, "logic_lord")
	require.NoError(t, err)
	_, err = svc.Share(context.Background(), post.ID, "logic_lord")
	require.NoError(t, err)
	_, err = svc.Share(context.Background(), post.ID, "data_dynamo")
	require.NoError(t, err)

	final, err := svc.AddComment(context.Background(), post.ID, "prof_davinci", models.CommentRequest{Text: "Excellent work."})
	require.NoError(t, err)

	assert.Equal(t, models.PostApproved, final.Status)
	assert.Equal(t, 1, final.Likes)
	assert.Equal(t, 2, final.Shares)
	assert.Equal(t, 1, final.Comments)
	require.Len(t, final.CommentData, 1)
	assert.Equal(t, "prof_davinci", final.CommentData[0].UserHandle)
}
