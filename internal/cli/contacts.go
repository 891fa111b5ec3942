package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/mindlens/internal/models"
)

// Contacts lists the stored emergency contacts.
func (a *App) Contacts(ctx context.Context) error {
	contacts, err := a.contacts.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(contacts) == 0 {
		a.println("No emergency contacts. Use 'addcontact' to add one.")
		return nil
	}
	for _, c := range contacts {
		a.println(fmt.Sprintf("%s  %s  %s", c.Id, c.Name, c.Phone))
	}
	return nil
}

// AddContact stores a new emergency contact.
func (a *App) AddContact(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Contact name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		a.println("Name must not be empty.")
		return nil
	}

	phone, err := GetSimpleText(a.reader, "Contact phone", a.out)
	if err != nil {
		return err
	}
	if phone == "" {
		a.println("Phone must not be empty.")
		return nil
	}
	phone = normalizePhone(phone)

	contact := &models.Contact{Id: uuid.New().String(), Name: name, Phone: phone}
	if err := a.contacts.CreateOrUpdate(ctx, contact); err != nil {
		return err
	}
	a.println("Added contact " + contact.Id)
	return nil
}

// DeleteContact removes a contact by id.
func (a *App) DeleteContact(ctx context.Context, id string) error {
	if err := a.contacts.DeleteByID(ctx, id); err != nil {
		return err
	}
	a.println("Removed contact " + id)
	return nil
}

// normalizePhone adds the default country prefix when none is given.
func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if !strings.HasPrefix(phone, "+") {
		phone = "+91" + phone
	}
	return phone
}
