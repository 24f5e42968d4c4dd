package datadog

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isometry/connector-datadog/internal/identity"
)

func TestCreateRole(t *testing.T) {
	t.Run("creates the role", func(t *testing.T) {
		var gotCreate rolePayload

		f := newFakeProvider(t)
		f.handle(http.MethodPost, pathRoles, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&gotCreate)
			respond(t, w, http.StatusCreated, rolePayload{Data: roleData{
				ID:         readOnlyID,
				Type:       typeRoles,
				Attributes: &roleAttributes{Name: "Auditor"},
			}})
		})

		client := newTestClient(t, f)
		uid, err := client.CreateRole(t.Context(), []identity.Attribute{
			identity.NewAttribute(AttrName, "Auditor"),
		})
		require.NoError(t, err)
		assert.Equal(t, readOnlyID, uid.Value)
		assert.Equal(t, "Auditor", uid.Name)

		assert.Equal(t, typeRoles, gotCreate.Data.Type)
		require.NotNil(t, gotCreate.Data.Attributes)
		assert.Equal(t, "Auditor", gotCreate.Data.Attributes.Name)
	})

	t.Run("requires a name", func(t *testing.T) {
		f := newFakeProvider(t)

		client := newTestClient(t, f)
		_, err := client.CreateRole(t.Context(), nil)
		require.Error(t, err)
		assert.True(t, identity.IsInvalidValueError(err))
		assert.Empty(t, f.Requests())
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		f := newFakeProvider(t)

		client := newTestClient(t, f)
		_, err := client.CreateRole(t.Context(), []identity.Attribute{
			identity.NewAttribute(AttrName, ""),
		})
		require.Error(t, err)
		assert.True(t, identity.IsInvalidValueError(err))
		assert.Empty(t, f.Requests())
	})

	t.Run("surfaces a name conflict", func(t *testing.T) {
		f := newFakeProvider(t)
		f.handle(http.MethodPost, pathRoles, func(w http.ResponseWriter, r *http.Request) {
			respond(t, w, http.StatusConflict, apiErrorBody{Errors: []string{"role exists"}})
		})

		client := newTestClient(t, f)
		_, err := client.CreateRole(t.Context(), []identity.Attribute{
			identity.NewAttribute(AttrName, "Auditor"),
		})
		require.Error(t, err)
		assert.True(t, identity.IsAlreadyExistsError(err))
	})
}

func TestUpdateRole(t *testing.T) {
	uid := identity.NewUID(readOnlyID, "Auditor")

	t.Run("renames the role", func(t *testing.T) {
		var gotPatch rolePayload

		f := newFakeProvider(t)
		f.handle(http.MethodPatch, pathRole, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&gotPatch)
			respond(t, w, http.StatusOK, nil)
		})

		client := newTestClient(t, f)
		err := client.UpdateRole(t.Context(), uid, []identity.Delta{
			identity.NewReplaceDelta(AttrName, "Compliance Auditor"),
		})
		require.NoError(t, err)

		assert.Equal(t, []string{
			"PATCH /api/v2/roles/" + readOnlyID,
		}, methodPaths(f.Requests()))
		assert.Equal(t, readOnlyID, gotPatch.Data.ID)
		require.NotNil(t, gotPatch.Data.Attributes)
		assert.Equal(t, "Compliance Auditor", gotPatch.Data.Attributes.Name)
	})

	t.Run("requires a name delta", func(t *testing.T) {
		f := newFakeProvider(t)

		client := newTestClient(t, f)
		err := client.UpdateRole(t.Context(), uid, nil)
		require.Error(t, err)
		assert.True(t, identity.IsInvalidValueError(err))
		assert.Empty(t, f.Requests())
	})

	t.Run("rejects name deletion", func(t *testing.T) {
		f := newFakeProvider(t)

		client := newTestClient(t, f)
		err := client.UpdateRole(t.Context(), uid, []identity.Delta{
			identity.NewReplaceDelta(AttrName),
		})
		require.Error(t, err)
		assert.True(t, identity.IsInvalidValueError(err))
		assert.Empty(t, f.Requests())
	})

	t.Run("rejects a malformed uid", func(t *testing.T) {
		f := newFakeProvider(t)

		client := newTestClient(t, f)
		err := client.UpdateRole(t.Context(), identity.NewUID("not-a-uuid", ""), []identity.Delta{
			identity.NewReplaceDelta(AttrName, "Compliance Auditor"),
		})
		require.Error(t, err)
		assert.True(t, identity.IsInvalidValueError(err))
		assert.Empty(t, f.Requests())
	})
}

func TestDeleteRole(t *testing.T) {
	t.Run("deletes the role", func(t *testing.T) {
		f := newFakeProvider(t)
		f.handle(http.MethodDelete, pathRole, func(w http.ResponseWriter, r *http.Request) {
			respond(t, w, http.StatusNoContent, nil)
		})

		client := newTestClient(t, f)
		require.NoError(t, client.DeleteRole(t.Context(), identity.NewUID(readOnlyID, "Auditor")))

		assert.Equal(t, []string{
			"DELETE /api/v2/roles/" + readOnlyID,
		}, methodPaths(f.Requests()))
	})

	t.Run("unknown uid", func(t *testing.T) {
		f := newFakeProvider(t)
		f.handle(http.MethodDelete, pathRole, func(w http.ResponseWriter, r *http.Request) {
			respond(t, w, http.StatusNotFound, apiErrorBody{Errors: []string{"role not found"}})
		})

		client := newTestClient(t, f)
		err := client.DeleteRole(t.Context(), identity.NewUID(readOnlyID, "Auditor"))
		require.Error(t, err)
		assert.True(t, identity.IsUnknownUIDError(err))
	})

	t.Run("rejects a malformed uid", func(t *testing.T) {
		f := newFakeProvider(t)

		client := newTestClient(t, f)
		err := client.DeleteRole(t.Context(), identity.NewUID("not-a-uuid", ""))
		require.Error(t, err)
		assert.True(t, identity.IsInvalidValueError(err))
		assert.Empty(t, f.Requests())
	})
}

func TestGetRoles(t *testing.T) {
	pages := map[string][]roleData{
		"0": managedRoles()[:2],
		"1": managedRoles()[2:],
	}

	t.Run("enumerates all pages sorted by name", func(t *testing.T) {
		f := newFakeProvider(t)
		f.handle(http.MethodGet, pathRoles, func(w http.ResponseWriter, r *http.Request) {
			respond(t, w, http.StatusOK, rolesPayload{Data: pages[r.URL.Query().Get("page[number]")]})
		})

		client := newTestClient(t, f)
		var objects []identity.Object
		require.NoError(t, client.GetRoles(t.Context(), collectObjects(&objects), SearchOptions{}))

		require.Len(t, objects, 3)
		assert.Equal(t, "Datadog Admin Role", objects[0].Name)
		assert.Equal(t, identity.ObjectClassRole, objects[0].Class)
		assert.Equal(t, adminRoleID, objects[0].UID.Value)

		listReqs := f.RequestsTo(http.MethodGet, pathRoles)
		require.Len(t, listReqs, 3)
		assert.Equal(t, "2", listReqs[0].Query["page[size]"])
		assert.Equal(t, "name", listReqs[0].Query["sort"])
	})

	t.Run("stops when the handler declines", func(t *testing.T) {
		f := newFakeProvider(t)
		f.handle(http.MethodGet, pathRoles, func(w http.ResponseWriter, r *http.Request) {
			respond(t, w, http.StatusOK, rolesPayload{Data: pages[r.URL.Query().Get("page[number]")]})
		})

		client := newTestClient(t, f)
		var objects []identity.Object
		err := client.GetRoles(t.Context(), func(obj identity.Object) bool {
			objects = append(objects, obj)
			return false
		}, SearchOptions{})
		require.NoError(t, err)

		assert.Len(t, objects, 1)
		assert.Len(t, f.RequestsTo(http.MethodGet, pathRoles), 1)
	})
}

func TestGetRoleByUID(t *testing.T) {
	createdAt := time.Date(2022, time.March, 3, 14, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, time.July, 12, 9, 30, 0, 0, time.UTC)

	richRole := roleData{
		ID:   adminRoleID,
		Type: typeRoles,
		Attributes: &roleAttributes{
			Name:       "Datadog Admin Role",
			CreatedAt:  &createdAt,
			ModifiedAt: &modifiedAt,
			UserCount:  7,
		},
	}

	t.Run("found with metadata", func(t *testing.T) {
		f := newFakeProvider(t)
		f.handle(http.MethodGet, pathRole, func(w http.ResponseWriter, r *http.Request) {
			respond(t, w, http.StatusOK, rolePayload{Data: richRole})
		})

		client := newTestClient(t, f)
		var objects []identity.Object
		uid := identity.NewUID(adminRoleID, "Datadog Admin Role")
		require.NoError(t, client.GetRoleByUID(t.Context(), uid, collectObjects(&objects), SearchOptions{}))

		require.Len(t, objects, 1)
		obj := objects[0]
		assert.Equal(t, adminRoleID, obj.UID.Value)
		assert.Equal(t, "Datadog Admin Role", obj.Name)

		created, ok := obj.Attribute(AttrCreatedAt)
		require.True(t, ok)
		got, ok := created.FirstTime()
		require.True(t, ok)
		assert.True(t, got.Equal(createdAt))

		userCount, ok := obj.Attribute(AttrUserCount)
		require.True(t, ok)
		assert.Equal(t, []any{int64(7)}, userCount.Values)
	})

	t.Run("metadata honors the allow-list", func(t *testing.T) {
		f := newFakeProvider(t)
		f.handle(http.MethodGet, pathRole, func(w http.ResponseWriter, r *http.Request) {
			respond(t, w, http.StatusOK, rolePayload{Data: richRole})
		})

		client := newTestClient(t, f)
		var objects []identity.Object
		uid := identity.NewUID(adminRoleID, "Datadog Admin Role")
		opts := SearchOptions{AttributesToGet: map[string]bool{AttrUserCount: true}}
		require.NoError(t, client.GetRoleByUID(t.Context(), uid, collectObjects(&objects), opts))

		require.Len(t, objects, 1)
		obj := objects[0]
		_, ok := obj.Attribute(AttrUserCount)
		assert.True(t, ok)
		_, ok = obj.Attribute(AttrCreatedAt)
		assert.False(t, ok)
		_, ok = obj.Attribute(AttrModifiedAt)
		assert.False(t, ok)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFakeProvider(t)
		f.handle(http.MethodGet, pathRole, func(w http.ResponseWriter, r *http.Request) {
			respond(t, w, http.StatusNotFound, apiErrorBody{Errors: []string{"role not found"}})
		})

		client := newTestClient(t, f)
		uid := identity.NewUID(adminRoleID, "Datadog Admin Role")
		err := client.GetRoleByUID(t.Context(), uid, collectObjects(&[]identity.Object{}), SearchOptions{})
		require.Error(t, err)
		assert.True(t, identity.IsUnknownUIDError(err))
	})
}

func TestGetRoleByName(t *testing.T) {
	t.Run("matches case-insensitively", func(t *testing.T) {
		f := newFakeProvider(t)
		f.handle(http.MethodGet, pathRoles, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page[number]") != "0" {
				respond(t, w, http.StatusOK, rolesPayload{Data: []roleData{}})
				return
			}
			respond(t, w, http.StatusOK, rolesPayload{Data: managedRoles()})
		})

		client := newTestClient(t, f)
		var objects []identity.Object
		require.NoError(t, client.GetRoleByName(t.Context(), "DATADOG STANDARD ROLE", collectObjects(&objects), SearchOptions{}))

		require.Len(t, objects, 1)
		assert.Equal(t, defaultRoleID, objects[0].UID.Value)
		assert.Len(t, f.RequestsTo(http.MethodGet, pathRoles), 1)
	})

	t.Run("no match is not an error", func(t *testing.T) {
		f := newFakeProvider(t)
		serveRoleCatalog(t, f)

		client := newTestClient(t, f)
		var objects []identity.Object
		require.NoError(t, client.GetRoleByName(t.Context(), "Imaginary Role", collectObjects(&objects), SearchOptions{}))

		assert.Empty(t, objects)
		assert.Len(t, f.RequestsTo(http.MethodGet, pathRoles), 2)
	})
}
