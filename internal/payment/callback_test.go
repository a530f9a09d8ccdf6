package payment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuhlali/chamapro-extend/internal/payment"
)

const successCallback = `{
	"Body": {
		"stkCallback": {
			"MerchantRequestID": "29115-34620561-1",
			"CheckoutRequestID": "ws_CO_191220191020363925",
			"ResultCode": 0,
			"ResultDesc": "The service request is processed successfully.",
			"CallbackMetadata": {
				"Item": [
					{"Name": "Amount", "Value": 1.00},
					{"Name": "MpesaReceiptNumber", "Value": "NLJ7RT61SV"},
					{"Name": "Balance"},
					{"Name": "TransactionDate", "Value": 20191219102115},
					{"Name": "PhoneNumber", "Value": 254708374149}
				]
			}
		}
	}
}`

func TestParseCallback(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		cb, err := payment.ParseCallback([]byte(successCallback))
		require.NoError(t, err)

		assert.True(t, cb.Succeeded())
		assert.Equal(t, "ws_CO_191220191020363925", cb.CheckoutRequestID)

		receipt, ok := cb.Item("MpesaReceiptNumber")
		assert.True(t, ok)
		assert.Equal(t, "NLJ7RT61SV", receipt)

		phone, ok := cb.Item("PhoneNumber")
		assert.True(t, ok)
		assert.Equal(t, "254708374149", phone)

		_, ok = cb.Item("Balance")
		assert.False(t, ok)
	})

	t.Run("Cancelled", func(t *testing.T) {
		cb, err := payment.ParseCallback([]byte(`{"Body":{"stkCallback":{
			"CheckoutRequestID":"ws_CO_1","ResultCode":1032,"ResultDesc":"Request cancelled by user"}}}`))
		require.NoError(t, err)

		assert.False(t, cb.Succeeded())
		assert.Equal(t, 1032, cb.ResultCode)
		assert.Empty(t, cb.Items)
	})

	malformed := map[string]string{
		"NotJSON":           `{"Body":`,
		"MissingID":         `{"Body":{"stkCallback":{"ResultCode":0}}}`,
		"EmptyObject":       `{}`,
		"StringResult":      `{"Body":{"stkCallback":{"CheckoutRequestID":"x","ResultCode":"zero"}}}`,
		"MissingResultCode": `{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_1","ResultDesc":"?"}}}`,
		"NullResultCode":    `{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_1","ResultCode":null}}}`,
	}

	for name, body := range malformed {
		t.Run(name, func(t *testing.T) {
			_, err := payment.ParseCallback([]byte(body))
			assert.ErrorIs(t, err, payment.ErrMalformedCallback)
		})
	}
}

func TestParseDisbursementResult(t *testing.T) {
	res, err := payment.ParseDisbursementResult([]byte(`{"Result":{
		"ResultType":0,"ResultCode":0,"ResultDesc":"The service request is processed successfully.",
		"OriginatorConversationID":"10571-7910404-1","ConversationID":"AG_20191219_00004e48cf7e3533f581",
		"TransactionID":"NLJ41HAY6Q"}}`))
	require.NoError(t, err)

	assert.Equal(t, "AG_20191219_00004e48cf7e3533f581", res.ConversationID)
	assert.Equal(t, "NLJ41HAY6Q", res.TransactionID)

	_, err = payment.ParseDisbursementResult([]byte(`{"Result":{}}`))
	assert.ErrorIs(t, err, payment.ErrMalformedCallback)
}
