package test

import (
	"net/http"
	"testing"
)

// TestHealthEndpoint verifies the liveness check
func TestHealthEndpoint(t *testing.T) {
	server := NewTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL() + "/healthz")
	if err != nil {
		t.Fatalf("Health check failed: %v", err)
	}
	defer resp.Body.Close()

	AssertStatusCode(t, resp, http.StatusOK)
}

// TestReadinessEndpoint verifies the credentials database readiness check
func TestReadinessEndpoint(t *testing.T) {
	server := NewTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL() + "/readyz")
	if err != nil {
		t.Fatalf("Readiness check failed: %v", err)
	}
	defer resp.Body.Close()

	AssertStatusCode(t, resp, http.StatusOK)
}

// TestAuthRequired verifies portfolio endpoints reject anonymous callers
func TestAuthRequired(t *testing.T) {
	server := NewTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL() + "/api/properties")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	AssertStatusCode(t, resp, http.StatusUnauthorized)
}

// TestRegisterLoginAndPropertyFlow walks the main portfolio lifecycle
func TestRegisterLoginAndPropertyFlow(t *testing.T) {
	server := NewTestServer(t)
	defer server.Close()

	token := server.Register(t, "landlord", "Password123")

	// save a property
	resp := server.PostJSON(t, "/api/properties", token, map[string]interface{}{
		"id":              "P001",
		"address":         "12 High Street",
		"ownerName":       "Jane Owner",
		"monthlyRent":     950.0,
		"monthlyMortgage": 600.0,
		"status":          "Rented",
	})
	resp.Body.Close()
	AssertStatusCode(t, resp, http.StatusOK)

	// list it back
	var list struct {
		Properties []struct {
			ID            string  `json:"id"`
			Address       string  `json:"address"`
			MonthlyProfit float64 `json:"monthlyProfit"`
		} `json:"properties"`
	}
	resp = server.GetJSON(t, "/api/properties", token, &list)
	AssertStatusCode(t, resp, http.StatusOK)
	if len(list.Properties) != 1 || list.Properties[0].ID != "P001" {
		t.Fatalf("unexpected property list: %+v", list.Properties)
	}
	if list.Properties[0].MonthlyProfit != 350 {
		t.Fatalf("expected profit 350, got %v", list.Properties[0].MonthlyProfit)
	}

	// delete and confirm empty
	req, _ := http.NewRequest(http.MethodDelete, server.URL()+"/api/properties/P001", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	delResp.Body.Close()
	AssertStatusCode(t, delResp, http.StatusOK)

	resp = server.GetJSON(t, "/api/properties", token, &list)
	AssertStatusCode(t, resp, http.StatusOK)
	if len(list.Properties) != 0 {
		t.Fatalf("expected empty list after delete, got %+v", list.Properties)
	}
}

// TestDeleteRenumbersProperties verifies survivors get sequential ids
func TestDeleteRenumbersProperties(t *testing.T) {
	server := NewTestServer(t)
	defer server.Close()

	token := server.Register(t, "landlord", "Password123")

	for _, p := range []map[string]interface{}{
		{"id": "P001", "address": "12 High Street", "status": "Vacant"},
		{"id": "P002", "address": "7 Mill Lane", "status": "Vacant"},
		{"id": "P003", "address": "3 River Road", "status": "Vacant"},
	} {
		resp := server.PostJSON(t, "/api/properties", token, p)
		resp.Body.Close()
		AssertStatusCode(t, resp, http.StatusOK)
	}

	req, _ := http.NewRequest(http.MethodDelete, server.URL()+"/api/properties/P002", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	resp.Body.Close()
	AssertStatusCode(t, resp, http.StatusOK)

	var list struct {
		Properties []struct {
			ID      string `json:"id"`
			Address string `json:"address"`
		} `json:"properties"`
	}
	listResp := server.GetJSON(t, "/api/properties", token, &list)
	AssertStatusCode(t, listResp, http.StatusOK)

	if len(list.Properties) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(list.Properties))
	}
	if list.Properties[0].ID != "P001" || list.Properties[1].ID != "P002" {
		t.Fatalf("expected renumbered ids P001, P002, got %+v", list.Properties)
	}
	if list.Properties[1].Address != "3 River Road" {
		t.Fatalf("expected old P003 to become P002, got %+v", list.Properties[1])
	}
}

// TestTenantsAndPayments exercises the tenant ledger across both databases
func TestTenantsAndPayments(t *testing.T) {
	server := NewTestServer(t)
	defer server.Close()

	token := server.Register(t, "landlord", "Password123")

	resp := server.PostJSON(t, "/api/properties", token, map[string]interface{}{
		"id": "P001", "address": "12 High Street", "status": "Rented",
	})
	resp.Body.Close()

	var tenant struct {
		ID int64 `json:"id"`
	}
	resp = server.PostJSON(t, "/api/tenants", token, map[string]interface{}{
		"name":           "Alice Tenant",
		"propertyId":     "P001",
		"email":          "alice@example.com",
		"leaseStartDate": "2026-01-01",
		"leaseEndDate":   "2027-01-01",
	})
	AssertStatusCode(t, resp, http.StatusOK)
	decode(t, resp, &tenant)
	if tenant.ID == 0 {
		t.Fatalf("expected assigned tenant id")
	}

	// a payment on the 10th is late
	resp = server.PostJSON(t, "/api/payments", token, map[string]interface{}{
		"tenantId":    tenant.ID,
		"amount":      950.0,
		"paymentDate": "2026-08-10",
	})
	AssertStatusCode(t, resp, http.StatusCreated)
	var payment struct {
		Late bool `json:"late"`
	}
	decode(t, resp, &payment)
	if !payment.Late {
		t.Fatalf("expected payment on the 10th to be late")
	}
}

// TestUserIsolation verifies two accounts never see each other's data
func TestUserIsolation(t *testing.T) {
	server := NewTestServer(t)
	defer server.Close()

	tokenA := server.Register(t, "alice", "Password123")
	tokenB := server.Register(t, "bob", "Password123")

	resp := server.PostJSON(t, "/api/properties", tokenA, map[string]interface{}{
		"id": "P001", "address": "12 High Street", "status": "Vacant",
	})
	resp.Body.Close()
	AssertStatusCode(t, resp, http.StatusOK)

	var list struct {
		Properties []struct {
			ID string `json:"id"`
		} `json:"properties"`
	}
	listResp := server.GetJSON(t, "/api/properties", tokenB, &list)
	AssertStatusCode(t, listResp, http.StatusOK)
	if len(list.Properties) != 0 {
		t.Fatalf("bob must not see alice's properties: %+v", list.Properties)
	}
}

// TestDuplicateRegistrationRejected verifies usernames are unique
func TestDuplicateRegistrationRejected(t *testing.T) {
	server := NewTestServer(t)
	defer server.Close()

	server.Register(t, "landlord", "Password123")

	resp := server.PostJSON(t, "/api/auth/register", "", map[string]string{
		"username": "landlord",
		"password": "Other123",
	})
	defer resp.Body.Close()
	AssertStatusCode(t, resp, http.StatusConflict)
}
