package adjust

import "github.com/finbridge/foliosync"

// sendAndReceiveRewrite turns every send-and-receive transfer into an
// equivalent buy/sell carrying the same account, date, figures, transaction
// id, description and fees, so later price and quantity math operates on a
// single canonical kind.
type sendAndReceiveRewrite struct{}

func (sendAndReceiveRewrite) Priority() int { return prioritySendAndReceive }

func (sendAndReceiveRewrite) Execute(h *foliosync.Holding) error {
	for _, a := range h.Activities {
		if a.Kind != foliosync.KindSendAndReceive {
			continue
		}
		a.Kind = foliosync.KindBuySell
		a.Traced("Send and receive to buy and sell", a.Quantity, a.UnitPrice)
	}
	return nil
}
