package alexa

// Interface namespaces
const (
	NamespaceAlexa                = "Alexa"
	NamespaceAuthorization        = "Alexa.Authorization"
	NamespaceDiscovery            = "Alexa.Discovery"
	NamespacePowerController      = "Alexa.PowerController"
	NamespaceSceneController      = "Alexa.SceneController"
	NamespaceTemperatureSensor    = "Alexa.TemperatureSensor"
	NamespaceThermostatController = "Alexa.ThermostatController"
)

// Directive names
const (
	NameAcceptGrant             = "AcceptGrant"
	NameActivate                = "Activate"
	NameAdjustTargetTemperature = "AdjustTargetTemperature"
	NameDiscover                = "Discover"
	NameReportState             = "ReportState"
	NameSetTargetTemperature    = "SetTargetTemperature"
	NameSetThermostatMode       = "SetThermostatMode"
	NameTurnOff                 = "TurnOff"
	NameTurnOn                  = "TurnOn"
)

// Event names
const (
	NameAcceptGrantResponse = "AcceptGrant.Response"
	NameActivationStarted   = "ActivationStarted"
	NameDiscoverResponse    = "Discover.Response"
	NameErrorResponse       = "ErrorResponse"
	NameResponse            = "Response"
	NameStateReport         = "StateReport"
)

// Property names
const (
	PropertyPowerState     = "powerState"
	PropertyTargetSetpoint = "targetSetpoint"
	PropertyTemperature    = "temperature"
	PropertyThermostatMode = "thermostatMode"
)

// ThermostatMode is the assistant's thermostat mode vocabulary
type ThermostatMode string

const (
	ThermostatModeAuto       ThermostatMode = "AUTO"
	ThermostatModeCool       ThermostatMode = "COOL"
	ThermostatModeHeat       ThermostatMode = "HEAT"
	ThermostatModeFan        ThermostatMode = "FAN"
	ThermostatModeDehumidify ThermostatMode = "DEHUMIDIFY"
	ThermostatModeOff        ThermostatMode = "OFF"
	ThermostatModeCustom     ThermostatMode = "CUSTOM"
)

const (
	PowerStateOn  = "ON"
	PowerStateOff = "OFF"
)

// Temperature scales
const (
	ScaleCelsius    = "CELSIUS"
	ScaleFahrenheit = "FAHRENHEIT"
	ScaleKelvin     = "KELVIN"
)

// Error response types
const (
	ErrorTypeInternal                   = "INTERNAL_ERROR"
	ErrorTypeTemperatureValueOutOfRange = "TEMPERATURE_VALUE_OUT_OF_RANGE"
)

// Discovery display categories
const (
	DisplayCategoryThermostat        = "THERMOSTAT"
	DisplayCategoryTemperatureSensor = "TEMPERATURE_SENSOR"
	DisplayCategorySceneTrigger      = "SCENE_TRIGGER"
)

const (
	CapabilityTypeAlexaInterface = "AlexaInterface"
	CauseAppInteraction          = "APP_INTERACTION"
)
