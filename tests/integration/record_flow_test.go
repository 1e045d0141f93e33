package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func pastDate(daysAgo int) string {
	return time.Now().AddDate(0, 0, -daysAgo).UTC().Format(time.RFC3339)
}

func TestCostFlow(t *testing.T) {
	t.Run("create_list_update_deactivate", func(t *testing.T) {
		app := setupApp(t)
		access, _, _ := app.registerUser(t, "cost@example.com", "password123")

		body := fmt.Sprintf(`{"value":"120.50","currency":"BRL","date":%q,"cost_type":"FOOD","observation":"groceries"}`, pastDate(2))
		rec := app.request("POST", "/api/v1/costs", body, access)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create cost failed: %d %s", rec.Code, rec.Body.String())
		}
		cost := parseJSON(t, rec)["cost"].(map[string]interface{})
		costID := cost["id"].(string)

		// Same type and date again is a duplicate, even with another value.
		body = fmt.Sprintf(`{"value":"55.00","currency":"BRL","date":%q,"cost_type":"FOOD","observation":"again"}`, pastDate(2))
		rec = app.request("POST", "/api/v1/costs", body, access)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d %s", rec.Code, rec.Body.String())
		}
		if code := errorCode(t, rec); code != "DUPLICATE_COST" {
			t.Errorf("expected DUPLICATE_COST, got %s", code)
		}

		rec = app.request("GET", "/api/v1/costs", "", access)
		if rec.Code != http.StatusOK {
			t.Fatalf("list costs failed: %d %s", rec.Code, rec.Body.String())
		}
		list := parseJSON(t, rec)
		if items := list["data"].([]interface{}); len(items) != 1 {
			t.Errorf("expected 1 cost in listing, got %d", len(items))
		}

		// Resubmitting the stored state unchanged is rejected.
		body = fmt.Sprintf(`{"value":"120.50","currency":"BRL","date":%q,"cost_type":"FOOD","observation":"groceries"}`, pastDate(2))
		rec = app.request("PUT", "/api/v1/costs/"+costID, body, access)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d %s", rec.Code, rec.Body.String())
		}
		if code := errorCode(t, rec); code != "NO_CHANGE_DETECTED" {
			t.Errorf("expected NO_CHANGE_DETECTED, got %s", code)
		}

		rec = app.request("PATCH", "/api/v1/costs/"+costID, `{"observation":"monthly groceries"}`, access)
		if rec.Code != http.StatusOK {
			t.Fatalf("patch cost failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = app.request("DELETE", "/api/v1/costs/"+costID, "", access)
		if rec.Code != http.StatusOK {
			t.Fatalf("deactivate cost failed: %d %s", rec.Code, rec.Body.String())
		}

		// Gone from the listing, still retrievable by id.
		rec = app.request("GET", "/api/v1/costs", "", access)
		list = parseJSON(t, rec)
		if items := list["data"].([]interface{}); len(items) != 0 {
			t.Errorf("expected empty listing after deactivation, got %d items", len(items))
		}
		rec = app.request("GET", "/api/v1/costs/"+costID, "", access)
		if rec.Code != http.StatusOK {
			t.Fatalf("get deactivated cost failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = app.request("DELETE", "/api/v1/costs/"+costID, "", access)
		if code := errorCode(t, rec); code != "ALREADY_INACTIVE" {
			t.Errorf("expected ALREADY_INACTIVE, got %s", code)
		}

		rec = app.request("POST", "/api/v1/costs/"+costID+"/activate", "", access)
		if rec.Code != http.StatusOK {
			t.Fatalf("activate cost failed: %d %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("ownership_enforced", func(t *testing.T) {
		app := setupApp(t)
		ownerAccess, _, _ := app.registerUser(t, "owner@example.com", "password123")
		strangerAccess, _, _ := app.registerUser(t, "stranger@example.com", "password123")

		body := fmt.Sprintf(`{"value":"80.00","currency":"EUR","date":%q,"cost_type":"TRANSPORT","observation":"train"}`, pastDate(1))
		rec := app.request("POST", "/api/v1/costs", body, ownerAccess)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create cost failed: %d %s", rec.Code, rec.Body.String())
		}
		costID := parseJSON(t, rec)["cost"].(map[string]interface{})["id"].(string)

		rec = app.request("GET", "/api/v1/costs/"+costID, "", strangerAccess)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d %s", rec.Code, rec.Body.String())
		}
		rec = app.request("DELETE", "/api/v1/costs/"+costID, "", strangerAccess)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d %s", rec.Code, rec.Body.String())
		}
	})
}

func TestExpenseFlow(t *testing.T) {
	t.Run("duplicate_needs_all_key_fields", func(t *testing.T) {
		app := setupApp(t)
		access, _, _ := app.registerUser(t, "expense@example.com", "password123")

		body := fmt.Sprintf(`{"value":"1800.00","currency":"BRL","date":%q,"expense_type":"RENT","payment_method":"BANK_TRANSFER","is_fixed":true}`, pastDate(3))
		rec := app.request("POST", "/api/v1/expenses", body, access)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create expense failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = app.request("POST", "/api/v1/expenses", body, access)
		if code := errorCode(t, rec); code != "DUPLICATE_EXPENSE" {
			t.Errorf("expected DUPLICATE_EXPENSE, got %s", code)
		}

		// A different payment method makes it a distinct expense.
		body = fmt.Sprintf(`{"value":"1800.00","currency":"BRL","date":%q,"expense_type":"RENT","payment_method":"PIX","is_fixed":true}`, pastDate(3))
		rec = app.request("POST", "/api/v1/expenses", body, access)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected distinct expense to be created: %d %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("invalid_currency_rejected", func(t *testing.T) {
		app := setupApp(t)
		access, _, _ := app.registerUser(t, "badcurrency@example.com", "password123")

		body := fmt.Sprintf(`{"value":"10.00","currency":"GBP","date":%q,"expense_type":"TRAVEL","payment_method":"CASH"}`, pastDate(1))
		rec := app.request("POST", "/api/v1/expenses", body, access)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d %s", rec.Code, rec.Body.String())
		}
	})
}

func TestInvestmentFlow(t *testing.T) {
	t.Run("create_simulate_recompute", func(t *testing.T) {
		app := setupApp(t)
		access, _, _ := app.registerUser(t, "invest@example.com", "password123")

		body := fmt.Sprintf(`{"value":"1000","currency":"BRL","date":%q,"investment_type":"FIXED_INCOME","action_quantity":1,"broker_name":"XP"}`, pastDate(30))
		rec := app.request("POST", "/api/v1/investments", body, access)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create investment failed: %d %s", rec.Code, rec.Body.String())
		}
		inv := parseJSON(t, rec)["investment"].(map[string]interface{})
		invID := inv["id"].(string)
		if inv["days_invested"].(float64) != 30 {
			t.Errorf("expected 30 days invested, got %v", inv["days_invested"])
		}

		rec = app.request("GET", "/api/v1/investments/"+invID+"/simulate?days=30", "", access)
		if rec.Code != http.StatusOK {
			t.Fatalf("simulate failed: %d %s", rec.Code, rec.Body.String())
		}
		sim := parseJSON(t, rec)["simulation"].(map[string]interface{})
		if sim["annual_rate"].(float64) != 0.08 {
			t.Errorf("expected annual rate 0.08, got %v", sim["annual_rate"])
		}

		rec = app.request("GET", "/api/v1/investments/"+invID+"/simulate?days=0", "", access)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for zero days, got %d %s", rec.Code, rec.Body.String())
		}

		// Batch recompute via the job route.
		rec = app.jobRequest("POST", "/api/v1/jobs/valuations/recompute", jobAPIKey)
		if rec.Code != http.StatusOK {
			t.Fatalf("recompute failed: %d %s", rec.Code, rec.Body.String())
		}
		report := parseJSON(t, rec)["report"].(map[string]interface{})
		if report["total"].(float64) != 1 {
			t.Errorf("expected 1 record in the batch, got %v", report["total"])
		}
	})

	t.Run("stock_position_is_singleton", func(t *testing.T) {
		app := setupApp(t)
		access, _, _ := app.registerUser(t, "stock@example.com", "password123")

		body := fmt.Sprintf(`{"value":"5000","currency":"USD","date":%q,"investment_type":"STOCK","action_quantity":10,"broker_name":"Schwab"}`, pastDate(10))
		rec := app.request("POST", "/api/v1/investments", body, access)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create investment failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = app.request("POST", "/api/v1/investments", body, access)
		if code := errorCode(t, rec); code != "DUPLICATE_INVESTMENT" {
			t.Errorf("expected DUPLICATE_INVESTMENT, got %s", code)
		}
	})

	t.Run("job_route_requires_api_key", func(t *testing.T) {
		app := setupApp(t)

		rec := app.jobRequest("POST", "/api/v1/jobs/valuations/recompute", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 without key, got %d %s", rec.Code, rec.Body.String())
		}
		rec = app.jobRequest("POST", "/api/v1/jobs/valuations/recompute", "wrong-key")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 with wrong key, got %d %s", rec.Code, rec.Body.String())
		}
	})
}
