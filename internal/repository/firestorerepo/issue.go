package firestorerepo

import (
	"context"

	"cloud.google.com/go/firestore"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/repository"
)

type issueRepository struct {
	client *firestore.Client
}

func NewIssueRepository(client *firestore.Client) repository.IssueRepository {
	return &issueRepository{client: client}
}

func (r *issueRepository) col() *firestore.CollectionRef {
	return r.client.Collection(issuesCollection)
}

func (r *issueRepository) Create(ctx context.Context, issue *domain.Issue) (string, error) {
	ref := r.col().NewDoc()
	if _, err := ref.Set(ctx, issue); err != nil {
		return "", domain.WrapUpstream("failed to create issue", err)
	}
	issue.ID = ref.ID
	return ref.ID, nil
}

func (r *issueRepository) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapGetError(err, "issue")
	}
	var issue domain.Issue
	if err := snap.DataTo(&issue); err != nil {
		return nil, domain.WrapUpstream("failed to decode issue", err)
	}
	issue.ID = snap.Ref.ID
	return &issue, nil
}

func (r *issueRepository) Update(ctx context.Context, id string, upd domain.RespondUpdate) error {
	updates := respondUpdates(upd)
	if len(updates) == 0 {
		return nil
	}
	if _, err := r.col().Doc(id).Update(ctx, updates); err != nil {
		return mapGetError(err, "issue")
	}
	return nil
}
