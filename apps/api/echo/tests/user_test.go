package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtihani/portal/core/user"
	testutil "github.com/mtihani/portal/tests"
)

func Test_userApi_login(t *testing.T) {
	app := setup(t)

	testutil.CreateUser(t, usrRepo, "Jane Doe", "janedoe", "jane@test.cd", "LeP@ssw0rd", []string{user.RoleStudent}, true)
	testutil.CreateUser(t, usrRepo, "Ghost", "ghost", "ghost@test.cd", "LeP@ssw0rd", nil, false)

	tests := []httpTest{
		{
			name: "Empty body", body: []byte("{}"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"username": "this field is required", "password": "this field is required"}),
		},
		{
			name: "Unknown user", body: []byte(`{"username": "nobody", "password": "LeP@ssw0rd"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "Wrong password", body: []byte(`{"username": "janedoe", "password": "nope"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "Deactivated account", body: []byte(`{"username": "ghost", "password": "LeP@ssw0rd"}`),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Login by username or email", func(t *testing.T) {
		for _, uname := range []string{"janedoe", "jane@test.cd", "JaneDoe"} {
			body := []byte(fmt.Sprintf(`{"username": %q, "password": "LeP@ssw0rd"}`, uname))
			req, rec := newRequest(http.MethodPost, "/v1/users/login", body)
			app.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["token"])
		}
	})
}

func Test_userApi_query(t *testing.T) {
	app := setup(t)

	path := func(search string, roles ...string) string {
		v := make(url.Values)
		if search != "" {
			v.Add("search", search)
		}
		for _, r := range roles {
			v.Add("role", r)
		}
		return "/v1/users?" + v.Encode()
	}

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero01", "hero@test.cd", "", []string{user.RoleStudent}, true)
	faculty := testutil.CreateUser(t, usrRepo, "Prof", "prof01", "prof@test.cd", "", []string{user.RoleFaculty}, true)
	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin01", "admin@test.cd", "", []string{user.RoleAdmin}, true)
	controller := testutil.CreateUser(t, usrRepo, "CoE", "coe", "coe@test.cd", "", []string{user.RoleAdminController}, true)

	adminToken := getToken(t, admin)
	empty := marchallList(t, []interface{}{}...)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/users", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin required", path: "/v1/users", token: getToken(t, student),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied),
		},
		{
			name: "Faculty is not admin", path: "/v1/users", token: getToken(t, faculty),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied),
		},
		{
			name: "Get all", path: "/v1/users", token: adminToken, wantCode: http.StatusOK,
			wantData: marchallList(t, student, faculty, admin, controller),
		},
		{name: "search (unknown)", path: path("lol"), token: adminToken, wantCode: http.StatusOK, wantData: empty},
		{name: "search=hero", path: path("hero"), token: adminToken, wantCode: http.StatusOK, wantData: marchallList(t, student)},
		{
			name: "role=admin:", path: path("", user.RoleAdmin), token: adminToken,
			wantCode: http.StatusOK, wantData: marchallList(t, admin, controller),
		},
		{
			name: "role=faculty:,student:", path: path("", user.RoleFaculty, user.RoleStudent), token: adminToken,
			wantCode: http.StatusOK, wantData: marchallList(t, student, faculty),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_register(t *testing.T) {
	app := setup(t)

	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin01", "admin@test.cd", "", []string{user.RoleAdmin}, true)
	student := testutil.CreateUser(t, usrRepo, "Hero", "hero01", "hero@test.cd", "", []string{user.RoleStudent}, true)
	adminToken := getToken(t, admin)

	t.Run("Admin required", func(t *testing.T) {
		body := []byte(`{"name": "New Guy", "username": "newguy1", "password": "LeP@ssw0rd", "password_confirm": "LeP@ssw0rd"}`)
		req, rec := newAuthRequest(http.MethodPost, "/v1/users/register", getToken(t, student), body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Admin cannot grant a role above their own", func(t *testing.T) {
		body := []byte(fmt.Sprintf(
			`{"name": "Boss", "username": "daboss1", "password": "LeP@ssw0rd", "password_confirm": "LeP@ssw0rd", "roles": [%q]}`,
			user.RoleAdminOwner,
		))
		req, rec := newAuthRequest(http.MethodPost, "/v1/users/register", adminToken, body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "not enough rights to set these roles")
	})

	t.Run("Creates a student", func(t *testing.T) {
		body := []byte(fmt.Sprintf(
			`{"name": "New Guy", "username": "newguy1", "email": "newguy@test.cd", "password": "LeP@ssw0rd", "password_confirm": "LeP@ssw0rd", "roles": [%q]}`,
			user.RoleStudent,
		))
		req, rec := newAuthRequest(http.MethodPost, "/v1/users/register", adminToken, body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		var created user.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.True(t, created.IsStudent())

		usr, err := usrRepo.GetUserByUsername("newguy1")
		require.NoError(t, err)
		assert.Equal(t, created.ID, usr.ID)
	})
}

func Test_userApi_detail(t *testing.T) {
	app := setup(t)

	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin01", "admin@test.cd", "", []string{user.RoleAdmin}, true)
	student := testutil.CreateUser(t, usrRepo, "Hero", "hero01", "hero@test.cd", "", []string{user.RoleStudent}, true)
	other := testutil.CreateUser(t, usrRepo, "Other", "other01", "other@test.cd", "", []string{user.RoleStudent}, true)

	adminToken := getToken(t, admin)
	studentToken := getToken(t, student)

	tests := []httpTest{
		{
			name: "Own detail", method: http.MethodGet, path: fmt.Sprintf("/v1/users/%d", student.ID),
			token: studentToken, wantCode: http.StatusOK, wantData: marchallObj(t, student),
		},
		{
			name: "Cannot see another user", method: http.MethodGet, path: fmt.Sprintf("/v1/users/%d", other.ID),
			token: studentToken, wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFoundResp),
		},
		{
			name: "Admin sees anyone", method: http.MethodGet, path: fmt.Sprintf("/v1/users/%d", other.ID),
			token: adminToken, wantCode: http.StatusOK, wantData: marchallObj(t, other),
		},
		{
			name: "Destroy is admin-only", method: http.MethodDelete, path: fmt.Sprintf("/v1/users/%d", student.ID),
			token: studentToken, wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Student cannot change their own roles", func(t *testing.T) {
		body := []byte(fmt.Sprintf(`{"roles": [%q]}`, user.RoleAdmin))
		req, rec := newAuthRequest(http.MethodPut, fmt.Sprintf("/v1/users/%d", student.ID), studentToken, body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Admin cannot delete themselves", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, fmt.Sprintf("/v1/users/%d", admin.ID), adminToken)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Admin deletes a user", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, fmt.Sprintf("/v1/users/%d", other.ID), adminToken)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)

		_, err := usrRepo.GetUserByID(other.ID)
		assert.Equal(t, user.ErrNotFound, err)
	})
}

func Test_userApi_tokenRefresh(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero01", "hero@test.cd", "", []string{user.RoleStudent}, true)

	t.Run("Auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/users/token-refresh")
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Refreshes a valid token", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/users/token-refresh", getToken(t, student))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["token"])
	})
}
