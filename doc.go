// Package smsgate sends SMS messages by emailing carrier gateway addresses
// such as 5551234567@cellcom.quiktxt.com through a transactional email
// provider.
//
// # Quick Start
//
//	sender, err := resend.New(resend.Config{APIKey: os.Getenv("RESEND_API_KEY")})
//	if err != nil {
//	    return err
//	}
//
//	svc, err := smsgate.Load(ctx, sender, carrier.Default(),
//	    smsgate.WithFromAddress("alerts@example.com"),
//	    smsgate.WithLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//	defer svc.Close(context.Background())
//
//	err = svc.Send(ctx, "disk almost full", 5551234567, "cellcom")
//
// # Carriers
//
// Carrier names are matched case-insensitively: "cellcom", "CELLCOM" and
// "CellCom" resolve to the same template. CarrierOptions lists the known
// names. The table comes from a carrier.Loader and is fixed for the
// lifetime of the Service; see package carrier for the available sources.
//
// # Delivery
//
// Send waits for the provider and returns its error wrapped with
// ErrSendFailed. SendAsync returns a *Delivery right away; the provider
// call runs in the background, bounded by WithMaxInFlight, and its result
// is available from Delivery.Wait. Failed asynchronous deliveries are also
// logged. Close waits for outstanding deliveries.
//
// Nothing is retried or persisted. Whether the gateway forwards the email
// to the handset is outside the provider's knowledge.
//
// # Errors
//
// An unknown carrier yields *UnknownCarrierError (errors.Is ErrUnknownCarrier)
// before any email is built. Empty messages yield ErrEmptyMessage and
// non-positive or rejected phone numbers yield ErrInvalidPhoneNumber.
package smsgate
