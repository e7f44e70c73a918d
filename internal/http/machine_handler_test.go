package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/domain"
	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/repository"
)

type machineServiceMock struct {
	machine *domain.Machine
	err     error
}

func (m machineServiceMock) GetMachine(context.Context, string) (*domain.Machine, error) {
	return m.machine, m.err
}

func (m machineServiceMock) AddStock(context.Context, string, string, int, float64, string) error {
	return m.err
}

func (m machineServiceMock) UpdateStock(context.Context, string, []domain.StockItem) (*domain.Machine, error) {
	return m.machine, m.err
}

func lobbyMachine() *domain.Machine {
	return &domain.Machine{
		ID:      "vm-1",
		Name:    "Lobby Machine",
		Address: "1 Main St",
		Stock: []domain.StockItem{
			{ItemName: "Soda", Quantity: 5, Price: 1.50},
		},
	}
}

func TestGetMachine_Success(t *testing.T) {
	handler := NewMachineHandler(machineServiceMock{machine: lobbyMachine()}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("GET", "/vending-machines/vm-1", nil), "id", "vm-1")

	handler.GetMachine(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("expected %d, got %d", http.StatusOK, recorder.Code)
	}

	var machine domain.Machine
	if err := json.NewDecoder(recorder.Body).Decode(&machine); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if machine.Name != "Lobby Machine" {
		t.Errorf("expected 'Lobby Machine', got %q", machine.Name)
	}
	if len(machine.Stock) != 1 || machine.Stock[0].Quantity != 5 {
		t.Errorf("unexpected stock: %+v", machine.Stock)
	}
}

func TestGetMachine_NotFound(t *testing.T) {
	handler := NewMachineHandler(machineServiceMock{err: repository.ErrMachineNotFound}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("GET", "/vending-machines/nope", nil), "id", "nope")

	handler.GetMachine(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestUpdateStock_Success(t *testing.T) {
	handler := NewMachineHandler(machineServiceMock{machine: lobbyMachine()}, 5*time.Second)

	body := `{"stock":[{"itemName":"Soda","stock":5,"price":1.5}]}`
	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("PUT", "/update-stock/vm-1", strings.NewReader(body)), "machineId", "vm-1")

	handler.UpdateStock(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("expected %d, got %d", http.StatusOK, recorder.Code)
	}

	var response UpdateStockResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Machine == nil || response.Machine.ID != "vm-1" {
		t.Errorf("expected updated machine, got %+v", response.Machine)
	}
}

func TestUpdateStock_InvalidJSON(t *testing.T) {
	handler := NewMachineHandler(machineServiceMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("PUT", "/update-stock/vm-1", strings.NewReader("{broken")), "machineId", "vm-1")

	handler.UpdateStock(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestAddStock_Success(t *testing.T) {
	handler := NewMachineHandler(machineServiceMock{}, 5*time.Second)

	body := `{"itemName":"Soda","quantity":10,"price":1.5,"vendingMachineId":"vm-1"}`
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/add-stock", strings.NewReader(body))

	handler.AddStock(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("expected %d, got %d", http.StatusOK, recorder.Code)
	}

	var response map[string]bool
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !response["success"] {
		t.Errorf("expected success true, got %v", response)
	}
}

func TestAddStock_MachineNotFound(t *testing.T) {
	handler := NewMachineHandler(machineServiceMock{err: repository.ErrMachineNotFound}, 5*time.Second)

	body := `{"itemName":"Soda","quantity":10,"price":1.5,"vendingMachineId":"nope"}`
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/add-stock", strings.NewReader(body))

	handler.AddStock(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected %d, got %d", http.StatusNotFound, recorder.Code)
	}
}
