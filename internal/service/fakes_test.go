package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"workbench/internal/domain"
	"workbench/internal/domain/models"
	"workbench/internal/domain/repositories"
	"workbench/internal/domain/services"
	"workbench/internal/permissions"
)

// memStore is the shared in-memory state behind the fake repositories. All
// fakes operate on the same store so cross-repository effects (teardown,
// batch grants) are observable from one place.
type memStore struct {
	apps      []models.App
	grants    []models.Collaborator
	chats     []models.Chat
	chatItems []models.ChatItem
	outLinks  []models.OutLink
	versions  []models.AppVersion
	guides    []models.InputGuide
	members   []models.TeamMember
	groups    map[string][]string // principal id -> group ids

	// failures maps an operation name to the error it should return,
	// for exercising mid-transaction failure paths.
	failures map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		groups:   make(map[string][]string),
		failures: make(map[string]error),
	}
}

func (s *memStore) failOn(op string, err error) {
	s.failures[op] = err
}

func (s *memStore) fail(op string) error {
	return s.failures[op]
}

// snapshot copies every table so a fake transaction can roll back to it.
func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	cp.apps = append([]models.App(nil), s.apps...)
	cp.grants = append([]models.Collaborator(nil), s.grants...)
	cp.chats = append([]models.Chat(nil), s.chats...)
	cp.chatItems = append([]models.ChatItem(nil), s.chatItems...)
	cp.outLinks = append([]models.OutLink(nil), s.outLinks...)
	cp.versions = append([]models.AppVersion(nil), s.versions...)
	cp.guides = append([]models.InputGuide(nil), s.guides...)
	cp.members = append([]models.TeamMember(nil), s.members...)
	for k, v := range s.groups {
		cp.groups[k] = append([]string(nil), v...)
	}
	return cp
}

func (s *memStore) restore(snap *memStore) {
	s.apps = snap.apps
	s.grants = snap.grants
	s.chats = snap.chats
	s.chatItems = snap.chatItems
	s.outLinks = snap.outLinks
	s.versions = snap.versions
	s.guides = snap.guides
	s.members = snap.members
	s.groups = snap.groups
}

// fakeTxManager mimics transactional semantics over the in-memory store:
// snapshot before fn, restore on error.
type fakeTxManager struct {
	store *memStore
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	snap := m.store.snapshot()
	if err := fn(ctx); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

type fakeAppRepo struct {
	store *memStore
}

func (r *fakeAppRepo) Create(ctx context.Context, app *models.App) error {
	for _, a := range r.store.apps {
		if a.TeamID == app.TeamID && a.Name == app.Name {
			return domain.ErrConflict
		}
	}
	r.store.apps = append(r.store.apps, *app)
	return nil
}

func (r *fakeAppRepo) GetByID(ctx context.Context, appID string) (*models.App, error) {
	for i := range r.store.apps {
		if r.store.apps[i].ID == appID {
			app := r.store.apps[i]
			return &app, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeAppRepo) ListByTeam(ctx context.Context, teamID string) ([]models.App, error) {
	apps := []models.App{}
	for _, a := range r.store.apps {
		if a.TeamID == teamID {
			apps = append(apps, a)
		}
	}
	return apps, nil
}

func (r *fakeAppRepo) Update(ctx context.Context, app *models.App) error {
	for i := range r.store.apps {
		if r.store.apps[i].ID == app.ID {
			r.store.apps[i] = *app
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeAppRepo) Delete(ctx context.Context, appID string) error {
	if err := r.store.fail("app.Delete"); err != nil {
		return err
	}
	for i := range r.store.apps {
		if r.store.apps[i].ID == appID {
			r.store.apps = append(r.store.apps[:i], r.store.apps[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeCollaboratorRepo struct {
	store *memStore
}

func (r *fakeCollaboratorRepo) ListByApp(ctx context.Context, appID string) ([]models.Collaborator, error) {
	grants := []models.Collaborator{}
	for _, g := range r.store.grants {
		if g.AppID == appID {
			grants = append(grants, g)
		}
	}
	return grants, nil
}

func (r *fakeCollaboratorRepo) Upsert(ctx context.Context, appID, principalID string, kind models.PrincipalKind, perm permissions.Value) error {
	if err := r.store.fail("collab.Upsert:" + principalID); err != nil {
		return err
	}
	now := time.Now()
	for i := range r.store.grants {
		g := &r.store.grants[i]
		if g.AppID == appID && g.PrincipalID == principalID && g.PrincipalKind == kind {
			g.Permission = perm
			g.UpdatedAt = now
			return nil
		}
	}
	r.store.grants = append(r.store.grants, models.Collaborator{
		ID:            "grant-" + appID + "-" + principalID,
		AppID:         appID,
		PrincipalID:   principalID,
		PrincipalKind: kind,
		Permission:    perm,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	return nil
}

func (r *fakeCollaboratorRepo) Remove(ctx context.Context, appID, principalID string, kind models.PrincipalKind) error {
	for i := range r.store.grants {
		g := r.store.grants[i]
		if g.AppID == appID && g.PrincipalID == principalID && g.PrincipalKind == kind {
			r.store.grants = append(r.store.grants[:i], r.store.grants[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeCollaboratorRepo) RemoveAllByApp(ctx context.Context, appID string) error {
	if err := r.store.fail("collab.RemoveAllByApp"); err != nil {
		return err
	}
	kept := r.store.grants[:0]
	for _, g := range r.store.grants {
		if g.AppID != appID {
			kept = append(kept, g)
		}
	}
	r.store.grants = kept
	return nil
}

func (r *fakeCollaboratorRepo) EffectivePermission(ctx context.Context, appID, principalID string, groupIDs []string) (permissions.Value, error) {
	inGroups := func(id string) bool {
		for _, g := range groupIDs {
			if g == id {
				return true
			}
		}
		return false
	}
	value := permissions.None
	for _, g := range r.store.grants {
		if g.AppID != appID {
			continue
		}
		switch g.PrincipalKind {
		case models.PrincipalMember:
			if g.PrincipalID == principalID {
				value = permissions.Combine(value, g.Permission)
			}
		case models.PrincipalGroup:
			if inGroups(g.PrincipalID) {
				value = permissions.Combine(value, g.Permission)
			}
		}
	}
	return value, nil
}

type fakeChatRepo struct {
	store *memStore
}

func (r *fakeChatRepo) CreateChat(ctx context.Context, chat *models.Chat) error {
	r.store.chats = append(r.store.chats, *chat)
	return nil
}

func (r *fakeChatRepo) CreateChatItem(ctx context.Context, item *models.ChatItem) error {
	r.store.chatItems = append(r.store.chatItems, *item)
	return nil
}

func (r *fakeChatRepo) ListChatsByApp(ctx context.Context, appID string) ([]models.Chat, error) {
	chats := []models.Chat{}
	for _, c := range r.store.chats {
		if c.AppID == appID {
			chats = append(chats, c)
		}
	}
	return chats, nil
}

func (r *fakeChatRepo) CountByApp(ctx context.Context, appID string) (int, int, error) {
	chats, items := 0, 0
	for _, c := range r.store.chats {
		if c.AppID == appID {
			chats++
		}
	}
	for _, it := range r.store.chatItems {
		if it.AppID == appID {
			items++
		}
	}
	return chats, items, nil
}

func (r *fakeChatRepo) DeleteItemsByApp(ctx context.Context, appID string) error {
	if err := r.store.fail("chat.DeleteItemsByApp"); err != nil {
		return err
	}
	kept := r.store.chatItems[:0]
	for _, it := range r.store.chatItems {
		if it.AppID != appID {
			kept = append(kept, it)
		}
	}
	r.store.chatItems = kept
	return nil
}

func (r *fakeChatRepo) DeleteByApp(ctx context.Context, appID string) error {
	if err := r.store.fail("chat.DeleteByApp"); err != nil {
		return err
	}
	kept := r.store.chats[:0]
	for _, c := range r.store.chats {
		if c.AppID != appID {
			kept = append(kept, c)
		}
	}
	r.store.chats = kept
	return nil
}

type fakeOutLinkRepo struct {
	store *memStore
}

func (r *fakeOutLinkRepo) Create(ctx context.Context, link *models.OutLink) error {
	r.store.outLinks = append(r.store.outLinks, *link)
	return nil
}

func (r *fakeOutLinkRepo) ListByApp(ctx context.Context, appID string) ([]models.OutLink, error) {
	links := []models.OutLink{}
	for _, l := range r.store.outLinks {
		if l.AppID == appID {
			links = append(links, l)
		}
	}
	return links, nil
}

func (r *fakeOutLinkRepo) DeleteByApp(ctx context.Context, appID string) error {
	if err := r.store.fail("outlink.DeleteByApp"); err != nil {
		return err
	}
	kept := r.store.outLinks[:0]
	for _, l := range r.store.outLinks {
		if l.AppID != appID {
			kept = append(kept, l)
		}
	}
	r.store.outLinks = kept
	return nil
}

type fakeAppVersionRepo struct {
	store *memStore
}

func (r *fakeAppVersionRepo) Create(ctx context.Context, version *models.AppVersion) error {
	r.store.versions = append(r.store.versions, *version)
	return nil
}

func (r *fakeAppVersionRepo) ListByApp(ctx context.Context, appID string) ([]models.AppVersion, error) {
	versions := []models.AppVersion{}
	for _, v := range r.store.versions {
		if v.AppID == appID {
			versions = append(versions, v)
		}
	}
	return versions, nil
}

func (r *fakeAppVersionRepo) DeleteByApp(ctx context.Context, appID string) error {
	if err := r.store.fail("version.DeleteByApp"); err != nil {
		return err
	}
	kept := r.store.versions[:0]
	for _, v := range r.store.versions {
		if v.AppID != appID {
			kept = append(kept, v)
		}
	}
	r.store.versions = kept
	return nil
}

type fakeInputGuideRepo struct {
	store *memStore
}

func (r *fakeInputGuideRepo) Create(ctx context.Context, guide *models.InputGuide) error {
	r.store.guides = append(r.store.guides, *guide)
	return nil
}

func (r *fakeInputGuideRepo) ListByApp(ctx context.Context, appID string) ([]models.InputGuide, error) {
	guides := []models.InputGuide{}
	for _, g := range r.store.guides {
		if g.AppID == appID {
			guides = append(guides, g)
		}
	}
	return guides, nil
}

func (r *fakeInputGuideRepo) DeleteByApp(ctx context.Context, appID string) error {
	if err := r.store.fail("guide.DeleteByApp"); err != nil {
		return err
	}
	kept := r.store.guides[:0]
	for _, g := range r.store.guides {
		if g.AppID != appID {
			kept = append(kept, g)
		}
	}
	r.store.guides = kept
	return nil
}

type fakeMemberDirectory struct {
	store *memStore
}

func (d *fakeMemberDirectory) ListTeamMembers(ctx context.Context, teamID string) ([]models.TeamMember, error) {
	members := []models.TeamMember{}
	for _, m := range d.store.members {
		if m.TeamID == teamID {
			members = append(members, m)
		}
	}
	return members, nil
}

func (d *fakeMemberDirectory) ListGroupIDs(ctx context.Context, principalID string) ([]string, error) {
	ids := d.store.groups[principalID]
	if ids == nil {
		return []string{}, nil
	}
	return ids, nil
}

// testEnv wires the real services over the in-memory fakes.
type testEnv struct {
	store         *memStore
	appRepo       repositories.AppRepository
	collabRepo    repositories.CollaboratorRepository
	chatRepo      repositories.ChatRepository
	authorizer    services.AppAuthorizer
	appService    services.AppService
	collabService services.CollaboratorService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newMemStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	appRepo := &fakeAppRepo{store: store}
	collabRepo := &fakeCollaboratorRepo{store: store}
	chatRepo := &fakeChatRepo{store: store}
	outLinkRepo := &fakeOutLinkRepo{store: store}
	versionRepo := &fakeAppVersionRepo{store: store}
	guideRepo := &fakeInputGuideRepo{store: store}
	directory := &fakeMemberDirectory{store: store}
	txManager := &fakeTxManager{store: store}

	catalog, err := permissions.NewCatalog()
	if err != nil {
		t.Fatalf("load permission catalog: %v", err)
	}

	authorizer := NewPermissionAuthorizer(appRepo, collabRepo, directory, logger)

	return &testEnv{
		store:      store,
		appRepo:    appRepo,
		collabRepo: collabRepo,
		chatRepo:   chatRepo,
		authorizer: authorizer,
		appService: NewAppService(
			appRepo, chatRepo, outLinkRepo, versionRepo, guideRepo,
			collabRepo, authorizer, txManager, logger,
		),
		collabService: NewCollaboratorService(collabRepo, authorizer, catalog, txManager, logger),
	}
}

// seedApp inserts an app owned by ownerID and returns it.
func (e *testEnv) seedApp(t *testing.T, id, teamID, ownerID, name string) *models.App {
	t.Helper()
	now := time.Now()
	app := models.App{
		ID:        id,
		TeamID:    teamID,
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	e.store.apps = append(e.store.apps, app)
	return &app
}

// seedGrant inserts a stored grant directly, bypassing the service layer.
func (e *testEnv) seedGrant(appID, principalID string, kind models.PrincipalKind, perm permissions.Value) {
	now := time.Now()
	e.store.grants = append(e.store.grants, models.Collaborator{
		ID:            "grant-" + appID + "-" + principalID,
		AppID:         appID,
		PrincipalID:   principalID,
		PrincipalKind: kind,
		Permission:    perm,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

// seedDependents fills every dependent table for the app so teardown tests
// can observe the full cascade.
func (e *testEnv) seedDependents(appID string) {
	now := time.Now()
	e.store.chats = append(e.store.chats,
		models.Chat{ID: appID + "-chat-1", AppID: appID, UserID: "u1", Title: "first", CreatedAt: now, UpdatedAt: now},
		models.Chat{ID: appID + "-chat-2", AppID: appID, UserID: "u2", Title: "second", CreatedAt: now, UpdatedAt: now},
	)
	e.store.chatItems = append(e.store.chatItems,
		models.ChatItem{ID: appID + "-item-1", ChatID: appID + "-chat-1", AppID: appID, Role: "user", Content: "hi", CreatedAt: now},
		models.ChatItem{ID: appID + "-item-2", ChatID: appID + "-chat-1", AppID: appID, Role: "assistant", Content: "hello", CreatedAt: now},
	)
	e.store.outLinks = append(e.store.outLinks,
		models.OutLink{ID: appID + "-link-1", AppID: appID, ShareID: "share-1", Name: "public", CreatedAt: now},
	)
	e.store.versions = append(e.store.versions,
		models.AppVersion{ID: appID + "-ver-1", AppID: appID, Label: "v1", Payload: []byte(`{}`), CreatedAt: now},
	)
	e.store.guides = append(e.store.guides,
		models.InputGuide{ID: appID + "-guide-1", AppID: appID, Text: "try asking about X", CreatedAt: now},
	)
}

// counts reports how many rows each dependent table holds for the app.
func (e *testEnv) counts(appID string) (chats, items, links, versions, guides, grants int) {
	for _, c := range e.store.chats {
		if c.AppID == appID {
			chats++
		}
	}
	for _, it := range e.store.chatItems {
		if it.AppID == appID {
			items++
		}
	}
	for _, l := range e.store.outLinks {
		if l.AppID == appID {
			links++
		}
	}
	for _, v := range e.store.versions {
		if v.AppID == appID {
			versions++
		}
	}
	for _, g := range e.store.guides {
		if g.AppID == appID {
			guides++
		}
	}
	for _, g := range e.store.grants {
		if g.AppID == appID {
			grants++
		}
	}
	return
}

func (e *testEnv) hasApp(appID string) bool {
	for _, a := range e.store.apps {
		if a.ID == appID {
			return true
		}
	}
	return false
}
