// Package domain defines the core entities of the onboarding API: user accounts
// and the onboarding questionnaires they fill in. Types here carry no
// persistence or transport concerns; validation of their fields lives in the
// validation package and persistence in the store implementations.
package domain
