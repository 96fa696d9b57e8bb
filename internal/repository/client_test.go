package repository

import (
	"context"
	"testing"

	"github.com/diewo77/go-immobiliare/internal/db"
	"github.com/diewo77/go-immobiliare/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientDuplicateEmail(t *testing.T) {
	_, clients, p := setup(t)
	ctx := context.Background()

	_, err := clients.Save(ctx, clientForm("Mario", "Rossi", "mario@rossi.it"))
	require.NoError(t, err)

	_, err = clients.Save(ctx, clientForm("Maria", "Rossi", "Mario@Rossi.it"))
	require.ErrorIs(t, err, ErrDuplicateEmail)
	assert.ErrorIs(t, err, db.ErrDuplicate)
	assert.Equal(t, int64(1), countRows(t, p, &models.Client{}))

	// The failed attempt must not consume a code either.
	res, err := clients.Save(ctx, clientForm("Maria", "Rossi", "maria@rossi.it"))
	require.NoError(t, err)
	assert.Equal(t, "SIC0002", res.Code)
}

func TestClientDuplicateEmailOnUpdate(t *testing.T) {
	_, clients, _ := setup(t)
	ctx := context.Background()

	_, err := clients.Save(ctx, clientForm("Mario", "Rossi", "mario@rossi.it"))
	require.NoError(t, err)
	second, err := clients.Save(ctx, clientForm("Luca", "Bianchi", "luca@bianchi.it"))
	require.NoError(t, err)

	f := clientForm("Luca", "Bianchi", "mario@rossi.it")
	f.Code = second.Code
	_, err = clients.Save(ctx, f)
	require.ErrorIs(t, err, ErrDuplicateEmail)

	got, err := clients.Get(ctx, second.Code)
	require.NoError(t, err)
	require.NotNil(t, got.Email)
	assert.Equal(t, "luca@bianchi.it", *got.Email)
}

func TestClientsWithoutEmailDoNotCollide(t *testing.T) {
	_, clients, p := setup(t)
	ctx := context.Background()
	for _, name := range []string{"Anna", "Bruno", "Carla"} {
		_, err := clients.Save(ctx, clientForm(name, "Neri", ""))
		require.NoError(t, err)
	}
	assert.Equal(t, int64(3), countRows(t, p, &models.Client{}))
}

func TestClientUpdate(t *testing.T) {
	_, clients, p := setup(t)
	ctx := context.Background()

	f := clientForm("Mario", "Rossi", "mario@rossi.it")
	f.Phone = "011 555 1234"
	res, err := clients.Save(ctx, f)
	require.NoError(t, err)

	upd := clientForm("Mario", "Rossini", "")
	upd.Code = res.Code
	out, err := clients.Save(ctx, upd)
	require.NoError(t, err)
	assert.False(t, out.Created)
	assert.Equal(t, int64(1), countRows(t, p, &models.Client{}))

	got, err := clients.Get(ctx, res.Code)
	require.NoError(t, err)
	assert.Equal(t, "Rossini", got.LastName)
	assert.Nil(t, got.Email)
	assert.Nil(t, got.Phone)
}

func TestClientUpdateMissingCode(t *testing.T) {
	_, clients, _ := setup(t)
	f := clientForm("Mario", "Rossi", "")
	f.Code = "SIC0042"
	_, err := clients.Save(context.Background(), f)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientListSearchAndOrder(t *testing.T) {
	_, clients, _ := setup(t)
	ctx := context.Background()

	add := func(first, last, email, city string) {
		f := clientForm(first, last, email)
		f.City = city
		_, err := clients.Save(ctx, f)
		require.NoError(t, err)
	}
	add("Mario", "Rossi", "mario@example.it", "Torino") // SIC0001
	add("Anna", "Bianchi", "", "Milano")                // SIC0002
	add("Luca", "Rossi", "", "")                        // SIC0003
	add("Bruno", "Verdi", "bruno@torino.example", "")   // SIC0004

	all, err := clients.List(ctx, "")
	require.NoError(t, err)
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.DisplayName()
	}
	assert.Equal(t, []string{"Bianchi Anna", "Rossi Luca", "Rossi Mario", "Verdi Bruno"}, names)

	codes := func(term string) []string {
		got, err := clients.List(ctx, term)
		require.NoError(t, err)
		out := make([]string, len(got))
		for i, c := range got {
			out[i] = c.Code
		}
		return out
	}
	assert.Equal(t, []string{"SIC0003", "SIC0001"}, codes("ROSSI"))
	assert.Equal(t, []string{"SIC0001", "SIC0004"}, codes("torino"))
	assert.Equal(t, []string{"SIC0002"}, codes("sic0002"))
	assert.Empty(t, codes("zzz"))
}

func TestClientDeleteUnlinksProperties(t *testing.T) {
	props, clients, p := setup(t)
	ctx := context.Background()

	c, err := clients.Save(ctx, clientForm("Mario", "Rossi", ""))
	require.NoError(t, err)
	f := propertyForm("Via Roma", "Torino")
	f.ClientCode = c.Code
	pr, err := props.Save(ctx, f)
	require.NoError(t, err)

	require.NoError(t, clients.Delete(ctx, c.Code))
	assert.Equal(t, int64(0), countRows(t, p, &models.Client{}))

	got, err := props.Get(ctx, pr.Code)
	require.NoError(t, err)
	assert.Nil(t, got.ClientCode)

	require.NoError(t, clients.Delete(ctx, "SIC0999"))
}

func TestClientOptionsAndCount(t *testing.T) {
	_, clients, _ := setup(t)
	ctx := context.Background()
	_, err := clients.Save(ctx, clientForm("Mario", "Rossi", "mario@rossi.it"))
	require.NoError(t, err)
	_, err = clients.Save(ctx, clientForm("Anna", "Bianchi", ""))
	require.NoError(t, err)

	opts, err := clients.Options(ctx)
	require.NoError(t, err)
	require.Len(t, opts, 2)
	assert.Equal(t, "SIC0002", opts[0].Code)
	assert.Equal(t, "Bianchi Anna", opts[0].DisplayName())
	assert.Nil(t, opts[0].Email)

	n, err := clients.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
