package ordering_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"quickbite/internal/apperr"
	"quickbite/internal/ordering"
)

type kitchenContext struct {
	svc     *ordering.Service
	now     time.Time
	lastErr error
}

func (k *kitchenContext) reset() {
	k.now = time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	k.lastErr = nil
	k.svc = nil
}

func (k *kitchenContext) clock() time.Time { return k.now }

func (k *kitchenContext) aKitchenWithASlotCapacityOf(capacity int) error {
	k.svc = ordering.New(ordering.WithCapacity(capacity), ordering.WithClock(k.clock))
	return nil
}

func (k *kitchenContext) studentAddsToTheCart(student string, qty int, meal, price string) error {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	k.svc.AddItem(student, meal, meal, p, qty)
	return nil
}

func (k *kitchenContext) studentPlacesTheCart(student, slot, location string) error {
	_, k.lastErr = k.svc.PlaceFromCart(context.Background(), ordering.PlaceRequest{
		StudentID:      student,
		StudentName:    student,
		PickupTime:     slot,
		PickupLocation: location,
	})
	return nil
}

func (k *kitchenContext) studentBuysASingle(student, meal, price, slot, location string) error {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	_, k.lastErr = k.svc.PlaceSingleItem(context.Background(), ordering.SingleItemRequest{
		StudentID:      student,
		StudentName:    student,
		ItemName:       meal,
		Price:          p,
		PickupTime:     slot,
		PickupLocation: location,
	})
	return nil
}

func (k *kitchenContext) minutesPass(n int) error {
	k.now = k.now.Add(time.Duration(n) * time.Minute)
	return nil
}

func (k *kitchenContext) theAdministratorSetsOrderTo(orderID, status string) error {
	_, k.lastErr = k.svc.Advance(context.Background(), orderID, status, "admin")
	return nil
}

func (k *kitchenContext) theCartOfStudentHolds(student string, qty int, meal string) error {
	line, ok := k.svc.GetOrCreate(student).Lines[meal]
	if !ok {
		return fmt.Errorf("cart of %s has no %s", student, meal)
	}
	if line.Quantity != qty {
		return fmt.Errorf("expected %d %s, got %d", qty, meal, line.Quantity)
	}
	return nil
}

func (k *kitchenContext) theCartOfStudentIsEmpty(student string) error {
	cart := k.svc.GetOrCreate(student)
	if !cart.IsEmpty() || cart.PickupTime != "" || cart.PickupLocation != "" {
		return fmt.Errorf("cart of %s is not empty", student)
	}
	return nil
}

func (k *kitchenContext) orderIsPromisedMinutesAfterItWasPlaced(orderID string, minutes int) error {
	o, err := k.svc.Get(orderID)
	if err != nil {
		return err
	}
	want := o.CreatedAt.Add(time.Duration(minutes) * time.Minute)
	if o.EstimatedReadyAt == nil || !o.EstimatedReadyAt.Equal(want) {
		return fmt.Errorf("expected %s ready at %s, got %v", orderID, want, o.EstimatedReadyAt)
	}
	return nil
}

func (k *kitchenContext) orderShowsPercentProgress(orderID string, pct int) error {
	got, err := k.svc.ProgressPercent(orderID)
	if err != nil {
		return err
	}
	if got != pct {
		return fmt.Errorf("expected %d%%, got %d%%", pct, got)
	}
	return nil
}

func (k *kitchenContext) theRequestFailsWith(kind string) error {
	if got := apperr.Kind(k.lastErr); got != kind {
		return fmt.Errorf("expected %q failure, got %q (%v)", kind, got, k.lastErr)
	}
	return nil
}

func (k *kitchenContext) theLedgerHoldsOrder(n int) error {
	if got := k.svc.Total(); got != n {
		return fmt.Errorf("expected %d orders, got %d", n, got)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	kc := &kitchenContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		kc.reset()
		return ctx, nil
	})

	ctx.Step(`^a kitchen with a slot capacity of (\d+)$`, kc.aKitchenWithASlotCapacityOf)
	ctx.Step(`^student "([^"]*)" adds (\d+) "([^"]*)" at "([^"]*)" to the cart$`, kc.studentAddsToTheCart)
	ctx.Step(`^student "([^"]*)" places the cart for "([^"]*)" at "([^"]*)"$`, kc.studentPlacesTheCart)
	ctx.Step(`^student "([^"]*)" buys a single "([^"]*)" at "([^"]*)" for "([^"]*)" at "([^"]*)"$`, kc.studentBuysASingle)
	ctx.Step(`^(\d+) minutes? passe?s?$`, kc.minutesPass)
	ctx.Step(`^the administrator sets order "([^"]*)" to "([^"]*)"$`, kc.theAdministratorSetsOrderTo)

	ctx.Step(`^the cart of student "([^"]*)" holds (\d+) "([^"]*)"$`, kc.theCartOfStudentHolds)
	ctx.Step(`^the cart of student "([^"]*)" is empty$`, kc.theCartOfStudentIsEmpty)
	ctx.Step(`^order "([^"]*)" is promised (\d+) minutes after it was placed$`, kc.orderIsPromisedMinutesAfterItWasPlaced)
	ctx.Step(`^order "([^"]*)" shows (\d+) percent progress$`, kc.orderShowsPercentProgress)
	ctx.Step(`^the request fails with "([^"]*)"$`, kc.theRequestFailsWith)
	ctx.Step(`^the ledger holds (\d+) orders?$`, kc.theLedgerHoldsOrder)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "ordering",
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
