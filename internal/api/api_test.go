package api

import (
	"bytes"
	"github.com/Aquilabot/KreaPC-BuildAdvisor/internal/config"
	"github.com/Aquilabot/KreaPC-BuildAdvisor/internal/models"
	"github.com/Aquilabot/KreaPC-BuildAdvisor/pkg/catalog"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func testBuild(price float64, caseModel, cpu string) models.BuildRecord {
	return models.BuildRecord{
		TotalPrice:       models.Money(price),
		CaseModel:        caseModel,
		CPUModel:         cpu,
		GPUModel:         "RTX 3060",
		MemoryModel:      "Corsair Vengeance 16GB",
		MotherboardModel: "MSI B550-A PRO",
		PSUModel:         "EVGA 600 W1",
		HDDModel:         "Seagate Barracuda 1TB",
	}
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cat, err := catalog.New([]models.BuildRecord{
		testBuild(1000, "NZXT H510", "Ryzen 5 5600X"),
		testBuild(1050.499, "Corsair 4000D", "Core i5-12400F"),
		testBuild(5000, "Lian Li O11", "Ryzen 9 7950X"),
	})
	require.NoError(t, err)
	return New(cat, config.Default())
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func formRequest(budget string) *http.Request {
	form := url.Values{"budget": {budget}}
	req := httptest.NewRequest(http.MethodPost, "/suggest", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/suggest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSuggestForm(t *testing.T) {
	app := newTestApp(t)

	status, body := do(t, app, formRequest("1000"))
	require.Equal(t, http.StatusOK, status)

	res := gjson.ParseBytes(body)
	assert.Equal(t, int64(2), res.Get("suggestions.#").Int())
	assert.Equal(t, "NZXT H510", res.Get("suggestions.0.caseModel").String())
	assert.Equal(t, "Core i5-12400F", res.Get("suggestions.1.cpuModel").String())
	assert.Equal(t, "1050.50", res.Get("suggestions.1.totalPrice").Raw)
	assert.Equal(t, "1000.00", res.Get("suggestions.0.totalPrice").Raw)
	assert.False(t, res.Get("error").Exists())

	for _, key := range []string{"totalPrice", "caseModel", "cpuModel", "gpuModel", "memoryModel", "motherboardModel", "psuModel", "hddModel"} {
		assert.True(t, res.Get("suggestions.0."+key).Exists(), key)
	}
}

func TestSuggestFallback(t *testing.T) {
	app := newTestApp(t)

	status, body := do(t, app, formRequest("3000"))
	require.Equal(t, http.StatusOK, status)

	var got []string
	for _, v := range gjson.GetBytes(body, "suggestions.#.totalPrice").Array() {
		got = append(got, v.Raw)
	}
	assert.Equal(t, []string{"1050.50", "1000.00", "5000.00"}, got)
}

func TestSuggestMultipartForm(t *testing.T) {
	app := newTestApp(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("budget", "5000"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/suggest", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	status, body := do(t, app, req)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ryzen 9 7950X", gjson.GetBytes(body, "suggestions.0.cpuModel").String())
	assert.Equal(t, int64(1), gjson.GetBytes(body, "suggestions.#").Int())
}

func TestSuggestJSON(t *testing.T) {
	app := newTestApp(t)

	for _, payload := range []string{`{"budget": 1000}`, `{"budget": "1000"}`} {
		status, body := do(t, app, jsonRequest(payload))
		require.Equal(t, http.StatusOK, status, payload)
		assert.Equal(t, int64(2), gjson.GetBytes(body, "suggestions.#").Int(), payload)
	}
}

func TestSuggestInvalidInput(t *testing.T) {
	app := newTestApp(t)

	cases := map[string]*http.Request{
		"non numeric":  formRequest("abc"),
		"negative":     formRequest("-100"),
		"missing":      formRequest(""),
		"json object":  jsonRequest(`{"budget": {"amount": 1}}`),
		"json null":    jsonRequest(`{"budget": null}`),
		"json garbage": jsonRequest(`{"budget":`),
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			status, body := do(t, app, req)
			assert.Equal(t, http.StatusBadRequest, status)

			res := gjson.ParseBytes(body)
			assert.NotEmpty(t, res.Get("error").String())
			assert.False(t, res.Get("suggestions").Exists())
		})
	}
}

func TestSuggestErrorMentionsInput(t *testing.T) {
	status, body := do(t, newTestApp(t), formRequest("abc"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, gjson.GetBytes(body, "error").String(), `"abc"`)
}

func TestComponents(t *testing.T) {
	status, body := do(t, newTestApp(t), httptest.NewRequest(http.MethodGet, "/components", nil))
	require.Equal(t, http.StatusOK, status)

	res := gjson.ParseBytes(body)
	var cases []string
	for _, v := range res.Get("cases").Array() {
		cases = append(cases, v.String())
	}
	assert.Equal(t, []string{"Corsair 4000D", "Lian Li O11", "NZXT H510"}, cases)
	assert.Equal(t, int64(1), res.Get("gpus.#").Int())
	for _, key := range []string{"cases", "cpus", "gpus", "memory", "motherboards", "psus", "hdds"} {
		assert.True(t, res.Get(key).IsArray(), key)
	}
}

func TestComponentValues(t *testing.T) {
	app := newTestApp(t)

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/components/cpus", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "cpus", gjson.GetBytes(body, "category").String())
	assert.Equal(t, "Core i5-12400F", gjson.GetBytes(body, "values.0").String())
	assert.Equal(t, int64(3), gjson.GetBytes(body, "values.#").Int())

	status, body = do(t, app, httptest.NewRequest(http.MethodGet, "/components/keyboards", nil))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, errorUnknownCategory, gjson.GetBytes(body, "error").String())
}

func TestBuilds(t *testing.T) {
	status, body := do(t, newTestApp(t), httptest.NewRequest(http.MethodGet, "/builds", nil))
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, int64(3), gjson.GetBytes(body, "builds.#").Int())
	assert.Equal(t, "Ryzen 5 5600X", gjson.GetBytes(body, "builds.0.cpuModel").String())
	assert.Equal(t, "1050.50", gjson.GetBytes(body, "builds.1.totalPrice").Raw)
}

func TestUnknownRouteUsesJSONError(t *testing.T) {
	resp, err := newTestApp(t).Test(httptest.NewRequest(http.MethodGet, "/nope", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.True(t, gjson.GetBytes(body, "error").Exists())
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}
