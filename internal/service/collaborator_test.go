package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"workbench/internal/domain"
	"workbench/internal/domain/models"
	"workbench/internal/domain/services"
	"workbench/internal/permissions"
)

const (
	testTeam   = "team-1"
	testOwner  = "owner-1"
	testEditor = "editor-1"
	testViewer = "viewer-1"
	testGroup  = "group-1"
	testApp    = "app-1"
)

func TestUpdateCollaboratorsDeduplicatesTargets(t *testing.T) {
	env := newTestEnv(t)
	env.seedApp(t, testApp, testTeam, testOwner, "demo")

	req := &services.UpdateCollaboratorsRequest{
		AppID:              testApp,
		CallerID:           testOwner,
		TargetPrincipalIDs: []string{testEditor, testEditor, testViewer},
		PrincipalKind:      models.PrincipalMember,
		Permission:         permissions.Read,
	}

	labeled, err := env.collabService.UpdateCollaborators(context.Background(), req)
	if err != nil {
		t.Fatalf("UpdateCollaborators: %v", err)
	}

	if len(labeled) != 2 {
		t.Fatalf("expected 2 grants after dedupe, got %d", len(labeled))
	}
	// First-seen order is kept
	if labeled[0].PrincipalID != testEditor || labeled[1].PrincipalID != testViewer {
		t.Errorf("unexpected grant order: %s, %s", labeled[0].PrincipalID, labeled[1].PrincipalID)
	}
	for _, g := range labeled {
		if g.Permission != permissions.Read {
			t.Errorf("grant %s: permission = %b, want %b", g.PrincipalID, g.Permission, permissions.Read)
		}
		if len(g.Labels) != 1 || g.Labels[0] != "Read" {
			t.Errorf("grant %s: labels = %v, want [Read]", g.PrincipalID, g.Labels)
		}
	}
}

func TestUpdateCollaboratorsReplacesExistingGrant(t *testing.T) {
	env := newTestEnv(t)
	env.seedApp(t, testApp, testTeam, testOwner, "demo")
	env.seedGrant(testApp, testEditor, models.PrincipalMember, permissions.Read)

	req := &services.UpdateCollaboratorsRequest{
		AppID:              testApp,
		CallerID:           testOwner,
		TargetPrincipalIDs: []string{testEditor},
		PrincipalKind:      models.PrincipalMember,
		Permission:         permissions.Write,
	}

	labeled, err := env.collabService.UpdateCollaborators(context.Background(), req)
	if err != nil {
		t.Fatalf("UpdateCollaborators: %v", err)
	}

	if len(labeled) != 1 {
		t.Fatalf("expected the existing grant to be replaced, got %d grants", len(labeled))
	}
	if labeled[0].Permission != permissions.Write {
		t.Errorf("permission = %b, want %b", labeled[0].Permission, permissions.Write)
	}
}

func TestUpdateCollaboratorsValidation(t *testing.T) {
	tests := []struct {
		name string
		req  *services.UpdateCollaboratorsRequest
	}{
		{
			name: "empty targets",
			req: &services.UpdateCollaboratorsRequest{
				AppID:         testApp,
				CallerID:      testOwner,
				PrincipalKind: models.PrincipalMember,
				Permission:    permissions.Read,
			},
		},
		{
			name: "blank target id",
			req: &services.UpdateCollaboratorsRequest{
				AppID:              testApp,
				CallerID:           testOwner,
				TargetPrincipalIDs: []string{""},
				PrincipalKind:      models.PrincipalMember,
				Permission:         permissions.Read,
			},
		},
		{
			name: "unknown principal kind",
			req: &services.UpdateCollaboratorsRequest{
				AppID:              testApp,
				CallerID:           testOwner,
				TargetPrincipalIDs: []string{testEditor},
				PrincipalKind:      models.PrincipalKind("robot"),
				Permission:         permissions.Read,
			},
		},
		{
			name: "owner sentinel as grant value",
			req: &services.UpdateCollaboratorsRequest{
				AppID:              testApp,
				CallerID:           testOwner,
				TargetPrincipalIDs: []string{testEditor},
				PrincipalKind:      models.PrincipalMember,
				Permission:         permissions.Owner,
			},
		},
		{
			name: "app owner among targets",
			req: &services.UpdateCollaboratorsRequest{
				AppID:              testApp,
				CallerID:           testOwner,
				TargetPrincipalIDs: []string{testEditor, testOwner},
				PrincipalKind:      models.PrincipalMember,
				Permission:         permissions.Read,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.seedApp(t, testApp, testTeam, testOwner, "demo")

			_, err := env.collabService.UpdateCollaborators(context.Background(), tt.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}

			// Nothing may have been stored
			grants, _ := env.collabRepo.ListByApp(context.Background(), testApp)
			if len(grants) != 0 {
				t.Errorf("expected no grants after rejected update, got %d", len(grants))
			}
		})
	}
}

func TestUpdateCollaboratorsRequiresOwner(t *testing.T) {
	env := newTestEnv(t)
	env.seedApp(t, testApp, testTeam, testOwner, "demo")
	// Manage is the highest grantable level; owner-only operations still
	// refuse it
	env.seedGrant(testApp, testEditor, models.PrincipalMember, permissions.Manage)

	req := &services.UpdateCollaboratorsRequest{
		AppID:              testApp,
		CallerID:           testEditor,
		TargetPrincipalIDs: []string{testViewer},
		PrincipalKind:      models.PrincipalMember,
		Permission:         permissions.Read,
	}

	_, err := env.collabService.UpdateCollaborators(context.Background(), req)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateCollaboratorsBatchIsAtomic(t *testing.T) {
	env := newTestEnv(t)
	env.seedApp(t, testApp, testTeam, testOwner, "demo")
	env.store.failOn("collab.Upsert:"+testViewer, fmt.Errorf("connection reset"))

	req := &services.UpdateCollaboratorsRequest{
		AppID:              testApp,
		CallerID:           testOwner,
		TargetPrincipalIDs: []string{testEditor, testViewer},
		PrincipalKind:      models.PrincipalMember,
		Permission:         permissions.Read,
	}

	_, err := env.collabService.UpdateCollaborators(context.Background(), req)
	if !errors.Is(err, domain.ErrTransactionFailed) {
		t.Fatalf("expected ErrTransactionFailed, got %v", err)
	}

	// The first target's upsert succeeded inside the scope but must not
	// survive the rollback
	grants, _ := env.collabRepo.ListByApp(context.Background(), testApp)
	if len(grants) != 0 {
		t.Errorf("expected no grants after failed batch, got %d", len(grants))
	}
}

func TestEffectivePermissionCombinesMemberAndGroupGrants(t *testing.T) {
	env := newTestEnv(t)
	app := env.seedApp(t, testApp, testTeam, testOwner, "demo")
	env.seedGrant(testApp, testViewer, models.PrincipalMember, permissions.Read)
	env.seedGrant(testApp, testGroup, models.PrincipalGroup, permissions.Write)
	env.store.groups[testViewer] = []string{testGroup}

	effective, err := env.authorizer.EffectivePermission(context.Background(), app, testViewer)
	if err != nil {
		t.Fatalf("EffectivePermission: %v", err)
	}

	want := permissions.Combine(permissions.Read, permissions.Write)
	if effective != want {
		t.Errorf("effective = %b, want %b", effective, want)
	}
	if !effective.Contains(permissions.Write) {
		t.Error("union of member read and group write must contain write")
	}
}

func TestEffectivePermissionOwnerOverridesGrants(t *testing.T) {
	env := newTestEnv(t)
	app := env.seedApp(t, testApp, testTeam, testOwner, "demo")
	// A stored grant for the owner must not narrow the implicit ownership
	env.seedGrant(testApp, testOwner, models.PrincipalMember, permissions.Read)

	effective, err := env.authorizer.EffectivePermission(context.Background(), app, testOwner)
	if err != nil {
		t.Fatalf("EffectivePermission: %v", err)
	}

	if !effective.IsOwner() {
		t.Errorf("effective = %b, want owner sentinel", effective)
	}
}

func TestEffectivePermissionNoGrants(t *testing.T) {
	env := newTestEnv(t)
	app := env.seedApp(t, testApp, testTeam, testOwner, "demo")

	effective, err := env.authorizer.EffectivePermission(context.Background(), app, testViewer)
	if err != nil {
		t.Fatalf("EffectivePermission: %v", err)
	}
	if effective != permissions.None {
		t.Errorf("effective = %b, want none", effective)
	}
}

func TestListCollaboratorsRequiresRead(t *testing.T) {
	env := newTestEnv(t)
	env.seedApp(t, testApp, testTeam, testOwner, "demo")
	env.seedGrant(testApp, testEditor, models.PrincipalMember, permissions.Read)

	if _, err := env.collabService.ListCollaborators(context.Background(), testApp, testEditor); err != nil {
		t.Errorf("reader should list collaborators: %v", err)
	}

	_, err := env.collabService.ListCollaborators(context.Background(), testApp, testViewer)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("stranger should be forbidden, got %v", err)
	}
}

func TestRemoveCollaborator(t *testing.T) {
	env := newTestEnv(t)
	env.seedApp(t, testApp, testTeam, testOwner, "demo")
	env.seedGrant(testApp, testEditor, models.PrincipalMember, permissions.Write)

	t.Run("owner removes a grant", func(t *testing.T) {
		err := env.collabService.RemoveCollaborator(context.Background(), testApp, testOwner, testEditor, models.PrincipalMember)
		if err != nil {
			t.Fatalf("RemoveCollaborator: %v", err)
		}
		grants, _ := env.collabRepo.ListByApp(context.Background(), testApp)
		if len(grants) != 0 {
			t.Errorf("expected grant removed, %d remain", len(grants))
		}
	})

	t.Run("absent grant is a no-op", func(t *testing.T) {
		err := env.collabService.RemoveCollaborator(context.Background(), testApp, testOwner, "nobody", models.PrincipalMember)
		if err != nil {
			t.Errorf("removing an absent grant should succeed, got %v", err)
		}
	})

	t.Run("self revocation is rejected", func(t *testing.T) {
		err := env.collabService.RemoveCollaborator(context.Background(), testApp, testOwner, testOwner, models.PrincipalMember)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		env.seedGrant(testApp, testEditor, models.PrincipalMember, permissions.Manage)
		err := env.collabService.RemoveCollaborator(context.Background(), testApp, testEditor, testViewer, models.PrincipalMember)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		err := env.collabService.RemoveCollaborator(context.Background(), testApp, testOwner, testViewer, models.PrincipalKind("robot"))
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})
}

func TestPreLabelList(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		perm permissions.Value
		want []string
	}{
		{"none", permissions.None, []string{}},
		{"read", permissions.Read, []string{"Read"}},
		{"write spans read", permissions.Write, []string{"Read", "Write"}},
		{"manage spans all", permissions.Manage, []string{"Read", "Write", "Manage"}},
		{"owner spans all", permissions.Owner, []string{"Read", "Write", "Manage"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := env.collabService.PreLabelList(tt.perm)
			if len(got) != len(tt.want) {
				t.Fatalf("labels = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("labels = %v, want %v", got, tt.want)
				}
			}
		})
	}
}
