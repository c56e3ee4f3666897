package core

import "errors"

const (
	UnsubscribedTrue       = "true"
	SendSuccessMessage     = "Messages sent!"
	MessageRequiredMessage = "Message text is required"
)

var (
	ErrMessageRequired  = errors.New(MessageRequiredMessage)
	ErrInvalidImageName = errors.New("image filename has no usable characters")
	ErrInvalidPayload   = errors.New("invalid request body")
)

var TestCustomersCSV = "Phone,Name,Unsubscribed\n" +
	"+14165550101,Ada,false\n" +
	"+14165550102,Grace, TRUE \n" +
	"+14165550103,Linus,\n"

var TestCustomer1 = CustomerRecord{Phone: "+14165550101", Unsubscribed: false}
var TestCustomer2 = CustomerRecord{Phone: "+14165550102", Unsubscribed: true}
var TestCustomer3 = CustomerRecord{Phone: "+14165550103", Unsubscribed: false}
