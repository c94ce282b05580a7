package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/SscSPs/demerit_registry/internal/apperrors"
	portssvc "github.com/SscSPs/demerit_registry/internal/core/ports/services"
	"github.com/SscSPs/demerit_registry/internal/dto"
)

const (
	demoPersonID = "56s_@x#FAB"
	demoAddress  = "32|Highland Street|Melbourne|Victoria|Australia"
)

// runDemo drives the scripted console scenario against svc and prints one
// line per step. Rejections are part of the script; only store failures abort.
func runDemo(ctx context.Context, w io.Writer, svc portssvc.PersonSvcFacade) error {
	d := demo{ctx: ctx, w: w, svc: svc}

	d.create("Add Person (six segment address)", dto.CreatePersonRequest{
		PersonID: demoPersonID, FirstName: "John", LastName: "Doe",
		Address: "32|Highland|Street|Melbourne|Victoria|Australia", Birthdate: "15-11-2000",
	})
	d.create("Add Person (valid)", dto.CreatePersonRequest{
		PersonID: demoPersonID, FirstName: "John", LastName: "Doe",
		Address: demoAddress, Birthdate: "15-11-2000",
	})
	d.lookup("Check Store Contains ID (p1)", demoPersonID)

	d.update("Update Details", demoPersonID, dto.UpdatePersonRequest{
		PersonID: demoPersonID, FirstName: "Johnny", LastName: "Doe",
		Address: demoAddress, Birthdate: "15-11-2000",
	})

	d.demerit("Add Demerit Points (valid)", demoPersonID, "15-03-2023", 3)
	d.demerit("Add Demerit Points (check suspension)", demoPersonID, "01-05-2024", 4)

	d.create("Add Person (invalid ID/address)", dto.CreatePersonRequest{
		PersonID: "11abcdEFGH", FirstName: "Alice", LastName: "Smith",
		Address: "10|Queen|Ave|Sydney|NSW|Australia", Birthdate: "01-01-1990",
	})
	d.lookup("Check Store Contains ID (p2)", "11abcdEFGH")

	d.demerit("Add Demerit Points (invalid points)", demoPersonID, "20-06-2024", 10)
	d.demerit("Add Demerit Points (invalid date)", demoPersonID, "2024-06-20", 2)

	if d.err == nil {
		d.history(demoPersonID)
	}
	return d.err
}

// demo holds the first store failure; later steps are skipped once it is set.
type demo struct {
	ctx context.Context
	w   io.Writer
	svc portssvc.PersonSvcFacade
	err error
}

func (d *demo) report(label string, err error, detail string) {
	if d.err != nil {
		return
	}
	switch {
	case err == nil:
		fmt.Fprintf(d.w, "%s: Success%s\n", label, detail)
	case errors.Is(err, apperrors.ErrIOFailure):
		d.err = fmt.Errorf("%s: %w", label, err)
		fmt.Fprintf(d.w, "%s: Failed (%v)\n", label, err)
	default:
		fmt.Fprintf(d.w, "%s: Failed (%v)\n", label, err)
	}
}

func (d *demo) create(label string, req dto.CreatePersonRequest) {
	if d.err != nil {
		return
	}
	_, err := d.svc.CreatePerson(d.ctx, req)
	d.report(label, err, "")
}

func (d *demo) lookup(label, personID string) {
	if d.err != nil {
		return
	}
	_, err := d.svc.GetPerson(d.ctx, personID)
	switch {
	case err == nil:
		fmt.Fprintf(d.w, "%s: Found\n", label)
	case errors.Is(err, apperrors.ErrNotFound):
		fmt.Fprintf(d.w, "%s: Not Found\n", label)
	default:
		d.report(label, err, "")
	}
}

func (d *demo) update(label, personID string, req dto.UpdatePersonRequest) {
	if d.err != nil {
		return
	}
	_, err := d.svc.UpdatePerson(d.ctx, personID, req)
	d.report(label, err, "")
}

func (d *demo) demerit(label, personID, date string, points int) {
	if d.err != nil {
		return
	}
	resp, err := d.svc.AddDemeritPoints(d.ctx, personID, dto.AddDemeritRequest{OffenseDate: date, Points: points})
	detail := ""
	if err == nil {
		detail = fmt.Sprintf(" (window points %d of %d, suspended %t)", resp.WindowPoints, resp.Threshold, resp.Suspended)
	}
	d.report(label, err, detail)
}

func (d *demo) history(personID string) {
	records, err := d.svc.ListOffenseHistory(d.ctx, personID)
	if err != nil {
		d.report("Offense History", err, "")
		return
	}
	fmt.Fprintf(d.w, "Offense History: %d entries\n", len(records))
	for _, r := range records {
		fmt.Fprintf(d.w, "  %s %d\n", r.Date, r.Points)
	}
}
