package restclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libreshelf/library-console-go/resource"
	"github.com/libreshelf/library-console-go/restclient"
)

type widget struct {
	ID    resource.ID `json:"id"`
	Label string      `json:"label"`
}

func (w widget) Identity() resource.ID { return w.ID }

type widgetDraft struct {
	Label string `json:"label"`
}

func newWidgetEndpoint(t *testing.T, baseURL string) *restclient.Endpoint[widget, widgetDraft] {
	t.Helper()

	ep, err := restclient.NewEndpoint[widget, widgetDraft](baseURL, "widgets")
	require.NoError(t, err)

	return ep
}

func Test_NewEndpoint_Validations(t *testing.T) {
	_, err := restclient.NewEndpoint[widget, widgetDraft]("", "widgets")
	assert.ErrorIs(t, err, restclient.ErrEmptyBaseURL)

	_, err = restclient.NewEndpoint[widget, widgetDraft]("http://localhost", "")
	assert.ErrorIs(t, err, restclient.ErrEmptyCollectionPath)

	_, err = restclient.NewEndpoint[widget, widgetDraft](
		"http://localhost", "widgets", restclient.WithHTTPClient[widget, widgetDraft](nil))
	assert.ErrorIs(t, err, restclient.ErrNilHTTPClient)
}

func Test_Endpoint_List_PreservesServerOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/widgets", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":3,"label":"c"},{"id":1,"label":"a"}]`))
	}))
	defer server.Close()

	listed, err := newWidgetEndpoint(t, server.URL).List(context.Background())

	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, resource.ID(3), listed[0].ID)
	assert.Equal(t, resource.ID(1), listed[1].ID)
}

func Test_Endpoint_Get_BuildsEntityURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/widgets/7", r.URL.Path)

		_, _ = w.Write([]byte(`{"id":7,"label":"seventh"}`))
	}))
	defer server.Close()

	entity, err := newWidgetEndpoint(t, server.URL).Get(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, widget{ID: 7, Label: "seventh"}, entity)
}

func Test_Endpoint_Create_PostsDraftAndDecodesEntity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/widgets", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var draft widgetDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, "fresh", draft.Label)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":12,"label":"fresh"}`))
	}))
	defer server.Close()

	created, err := newWidgetEndpoint(t, server.URL).Create(context.Background(), widgetDraft{Label: "fresh"})

	require.NoError(t, err)
	assert.Equal(t, resource.ID(12), created.ID)
}

func Test_Endpoint_Update_SendsPutAndDiscardsAck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/widgets/4", r.URL.Path)

		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	err := newWidgetEndpoint(t, server.URL).Update(context.Background(), 4, widgetDraft{Label: "renamed"})

	assert.NoError(t, err)
}

func Test_Endpoint_Delete_SendsDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/widgets/9", r.URL.Path)

		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	err := newWidgetEndpoint(t, server.URL).Delete(context.Background(), 9)

	assert.NoError(t, err)
}

func Test_Endpoint_Action_BuildsActionURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/widgets/return/5", r.URL.Path)

		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	err := newWidgetEndpoint(t, server.URL).Action(context.Background(), "return", 5)

	assert.NoError(t, err)
}

func Test_Endpoint_ErrorClassification(t *testing.T) {
	tests := []struct {
		name          string
		statusCode    int
		body          string
		expectedClass error
		expectedMsg   string
	}{
		{
			name:          "404_maps_to_not_found",
			statusCode:    http.StatusNotFound,
			body:          `{"error":"widget not found"}`,
			expectedClass: resource.ErrNotFound,
			expectedMsg:   "widget not found",
		},
		{
			name:          "400_maps_to_validation",
			statusCode:    http.StatusBadRequest,
			body:          `{"error":"label is required"}`,
			expectedClass: resource.ErrValidation,
			expectedMsg:   "label is required",
		},
		{
			name:          "422_maps_to_validation",
			statusCode:    http.StatusUnprocessableEntity,
			body:          `{"error":"label too long"}`,
			expectedClass: resource.ErrValidation,
			expectedMsg:   "label too long",
		},
		{
			name:          "409_maps_to_conflict",
			statusCode:    http.StatusConflict,
			body:          `{"error":"widget is already borrowed"}`,
			expectedClass: resource.ErrConflict,
			expectedMsg:   "widget is already borrowed",
		},
		{
			name:          "500_maps_to_transport",
			statusCode:    http.StatusInternalServerError,
			body:          `{"error":"boom"}`,
			expectedClass: resource.ErrTransport,
			expectedMsg:   "boom",
		},
		{
			name:          "non_json_body_is_passed_through_raw",
			statusCode:    http.StatusBadGateway,
			body:          "upstream unavailable",
			expectedClass: resource.ErrTransport,
			expectedMsg:   "upstream unavailable",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.statusCode)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := newWidgetEndpoint(t, server.URL).Get(context.Background(), 1)

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expectedClass)
			assert.Equal(t, tc.expectedMsg, resource.RemoteMessage(err),
				"the server's message must be preserved verbatim")

			var remoteErr *resource.RemoteError
			require.ErrorAs(t, err, &remoteErr)
			assert.Equal(t, tc.statusCode, remoteErr.StatusCode)
		})
	}
}

func Test_Endpoint_UnreachableServer_IsTransportError(t *testing.T) {
	// A closed server makes the round trip itself fail.
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close()

	_, err := newWidgetEndpoint(t, server.URL).List(context.Background())

	assert.ErrorIs(t, err, resource.ErrTransport)
}
