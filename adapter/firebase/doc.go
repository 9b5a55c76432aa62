// Package firebase backs the console with Firebase Authentication as the
// Identity Service and a Firestore collection as the Profile Store.
package firebase
